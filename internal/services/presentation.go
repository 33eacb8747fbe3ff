package services

import (
	"activity-tracker.com/activity-tracker/internal/constants"
	model "activity-tracker.com/activity-tracker/internal/models"
)

// View names a frontend page component.
type View string

const (
	ViewIndex     View = "Index"
	ViewHome      View = "Home"
	ViewToday     View = "Today"
	ViewCompleted View = "Completed"
	ViewPending   View = "Pending"
	ViewPaused    View = "Paused"
	ViewArchived  View = "Archieved"
	ViewDeleted   View = "Deleted"
	ViewDetails   View = "Details"
	ViewEdit      View = "Edit"
	ViewStatus    View = "Status"
	ViewView      View = "View"
	ViewReview    View = "Review"
	ViewError     View = "Error"

	ViewShowArchived  View = "viewPageForArchieved"
	ViewShowPaused    View = "viewPageForPaused"
	ViewShowPending   View = "viewPageForPending"
	ViewShowCompleted View = "viewPageForCompleted"
)

// Presentation selects which rule Present applies.
type Presentation int

const (
	PresentView Presentation = iota
	PresentReview
)

// ReviewView picks the page used after un-archiving: completed work is
// reviewed, anything else is viewed.
func ReviewView(a model.Activity) View {
	if a.IsCompleted() {
		return ViewReview
	}
	return ViewView
}

// DetailView is the /view counterpart of ReviewView. Only pending work gets
// the plain view; every other status, including custom ones, is reviewed.
func DetailView(a model.Activity) View {
	if a.StatusID == constants.StatusPending {
		return ViewView
	}
	return ViewReview
}

// ShowView picks the page for a single activity from its flags, archived
// first, then paused, then status.
func ShowView(a model.Activity) View {
	switch {
	case a.IsArchived:
		return ViewShowArchived
	case a.IsPaused:
		return ViewShowPaused
	case a.StatusID == constants.StatusPending:
		return ViewShowPending
	case a.StatusID == constants.StatusCompleted:
		return ViewShowCompleted
	default:
		return ViewDetails
	}
}
