package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/briandowns/spinner"

	"pinscraper/pkg/models"
	"pinscraper/pkg/progress"
)

// Shell is the plain terminal front end: it prints status lines as they
// arrive and shows a final notice once the run is over
type Shell struct {
	saveFolder string
	notifier   *Notifier
	spinner    *spinner.Spinner
	tracker    *StatusTracker
}

// NewShell creates a Shell for runs that save into saveFolder
func NewShell(saveFolder string, notifier *Notifier) *Shell {
	if notifier == nil {
		notifier = NewNotifier(false)
	}

	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(Output))

	return &Shell{
		saveFolder: saveFolder,
		notifier:   notifier,
		spinner:    s,
		tracker:    NewStatusTracker(),
	}
}

// Banner prints the logo and the resolved save folder
func (s *Shell) Banner() {
	PrintLogo()
	PrintInfo("Save folder", s.saveFolder)
	fmt.Fprintln(Output)
}

// Watch prints every line from ch until it is closed. A spinner runs while
// the pin page is being fetched.
func (s *Shell) Watch(ch *progress.Channel) *StatusTracker {
	for line := range ch.Lines() {
		s.spinner.Stop()

		s.tracker.Observe(line)
		fmt.Fprintln(Output, ColorizeLine(line))

		if strings.Contains(line, "Fetching pin page") {
			s.spinner.Suffix = " waiting for pinterest.com"
			s.spinner.Start()
		}
	}
	s.spinner.Stop()

	return s.tracker
}

// Finish shows the final notice for a run
func (s *Shell) Finish(summary models.Summary, err error) {
	notice := NoticeFor(summary, err, s.saveFolder)

	switch notice.Level {
	case NoticeSuccess:
		s.notifier.SendSuccess(notice.Title, fmt.Sprintf("%s in %s",
			notice.Message, s.tracker.GetElapsedTime().Round(time.Millisecond)))
	case NoticeWarning:
		s.notifier.SendWarning(notice.Title, notice.Message)
	default:
		s.notifier.SendError(notice.Title, notice.Message)
	}
}
