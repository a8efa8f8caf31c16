// Package ui renders views to a terminal writer.
package ui

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/mockmate/mockmate-cli/internal/model"
)

// View writes rendered output. Tests hand it a buffer.
type View struct {
	out io.Writer

	heading *color.Color
	success *color.Color
	failure *color.Color
	warning *color.Color
}

// New builds a view writing to out.
func New(out io.Writer) *View {
	return &View{
		out:     out,
		heading: color.New(color.FgCyan, color.Bold),
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
		warning: color.New(color.FgYellow),
	}
}

func (v *View) Headingf(format string, args ...any) {
	_, _ = v.heading.Fprintf(v.out, format+"\n", args...)
}

func (v *View) Successf(format string, args ...any) {
	_, _ = v.success.Fprintf(v.out, format+"\n", args...)
}

// Errorf surfaces a view-local failure. Views isolate failures to their own
// output; nothing here terminates the program.
func (v *View) Errorf(format string, args ...any) {
	_, _ = v.failure.Fprintf(v.out, format+"\n", args...)
}

func (v *View) Warnf(format string, args ...any) {
	_, _ = v.warning.Fprintf(v.out, format+"\n", args...)
}

func (v *View) Printf(format string, args ...any) {
	fmt.Fprintf(v.out, format, args...)
}

// TryAgain prints the manual-retry hint after a recoverable failure.
func (v *View) TryAgain() {
	_, _ = v.warning.Fprintln(v.out, "try again: re-run the command")
}

// UserTable renders a user directory listing.
func (v *View) UserTable(users []model.User) {
	if len(users) == 0 {
		v.Printf("no users found\n")
		return
	}
	table := tablewriter.NewWriter(v.out)
	table.SetHeader([]string{"ID", "Username", "Email", "Followers", "Following", "You Follow"})
	for _, u := range users {
		follows := ""
		if u.IsFollowing {
			follows = "yes"
		}
		table.Append([]string{
			u.ID, u.Username, u.Email,
			strconv.Itoa(u.FollowersCount), strconv.Itoa(u.FollowingCount),
			follows,
		})
	}
	table.Render()
}

// Profile renders a single user profile.
func (v *View) Profile(u model.User) {
	v.Headingf("%s", u.Username)
	v.Printf("id:        %s\n", u.ID)
	v.Printf("email:     %s\n", u.Email)
	if u.Bio != "" {
		v.Printf("bio:       %s\n", u.Bio)
	}
	if u.AvatarURL != "" {
		v.Printf("avatar:    %s\n", u.AvatarURL)
	}
	v.Printf("followers: %d  following: %d\n", u.FollowersCount, u.FollowingCount)
}

// ResultsSummary renders the four summary numbers and one card per exam.
func (v *View) ResultsSummary(s model.ResultsSummary) {
	v.Headingf("Results")
	v.Printf("total exams:      %d\n", s.TotalExams)
	v.Printf("exams with marks: %d\n", s.ExamsWithMarks)
	v.Printf("total mark:       %g\n", s.TotalMark)
	v.Printf("average mark:     %g\n", s.AverageMark)

	for _, ex := range s.Exams {
		v.Printf("\n")
		v.Headingf("%s (%s)", ex.ExamType, ex.ExamID)
		v.Printf("mark: %g / %g\n", ex.TotalMark, ex.MaxMark)
		if len(ex.Questions) > 0 {
			table := tablewriter.NewWriter(v.out)
			table.SetHeader([]string{"Question", "Mark", "Max"})
			for i, q := range ex.Questions {
				table.Append([]string{
					strconv.Itoa(i + 1),
					strconv.FormatFloat(q.Mark, 'g', -1, 64),
					strconv.FormatFloat(q.MaxMark, 'g', -1, 64),
				})
			}
			table.Render()
		}
	}
}

// Question renders one exam question with its position.
func (v *View) Question(n, total int, q model.Question) {
	v.Headingf("Question %d/%d", n, total)
	v.Printf("%s\n", q.QuestionText)
}

// ChatTranscript renders a conversation; the signed-in user's messages are
// prefixed "you".
func (v *View) ChatTranscript(selfID string, msgs []model.ChatMessage) {
	for _, m := range msgs {
		who := m.SenderID
		if m.SenderID == selfID {
			who = "you"
		}
		v.Printf("[%s] %s: %s\n", m.CreatedAt.Local().Format(time.Kitchen), who, m.Message)
	}
}
