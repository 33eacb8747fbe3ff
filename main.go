package main

import "activity-tracker.com/activity-tracker/cmd"

func main() {
	cmd.Execute()
}
