// Package board holds the pure derivations the board is built from: the
// completion date implied by a status change, the visible/archived split of a
// task list, and task filtering.
package board

import (
	"time"

	"github.com/akyairhashvil/sprintboard/internal/models"
)

// DeriveCompletion adjusts patch so that the completion date follows the
// status it sets. Moving to Done stamps today's local calendar day, moving to
// any other status clears the date, and a patch without a status is returned
// unchanged. An explicit completion date in the patch is overridden, and
// existing does not change the outcome; it is accepted so callers pass the
// status the patch is applied over.
func DeriveCompletion(existing models.Status, patch models.TaskPatch, now time.Time) models.TaskPatch {
	if patch.Status == nil {
		return patch
	}
	if *patch.Status == models.StatusDone {
		today := models.Day(now)
		patch.CompletionDate = &today
		patch.ClearCompletionDate = false
		return patch
	}
	patch.CompletionDate = nil
	patch.ClearCompletionDate = true
	return patch
}
