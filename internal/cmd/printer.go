package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"chatterly/internal/core"
	"chatterly/internal/feed"
	"chatterly/internal/forms"

	"github.com/dustin/go-humanize"
	"github.com/k0kubun/pp"
	"github.com/samber/lo"
)

type printer struct {
	w   io.Writer
	raw bool
	now func() time.Time
}

func newPrinter(w io.Writer, raw bool) *printer {
	return &printer{w: w, raw: raw, now: time.Now}
}

func (p *printer) message(msg forms.Message) {
	if msg.Empty() {
		return
	}
	fmt.Fprintln(p.w, msg.Text)
}

// header prints a line followed by a blank one, skipped in raw mode.
func (p *printer) header(format string, args ...any) {
	if p.raw {
		return
	}
	if format != "" {
		fmt.Fprintf(p.w, format+"\n", args...)
	}
	fmt.Fprintln(p.w)
}

// dump prints v verbatim in raw mode, reports whether it did.
func (p *printer) dump(v any) bool {
	if !p.raw {
		return false
	}
	pp.Fprintln(p.w, v) //nolint:errcheck
	return true
}

func (p *printer) entries(entries []feed.Entry) {
	if p.dump(entries) {
		return
	}

	if len(entries) == 0 {
		fmt.Fprintln(p.w, "No posts found.")
		return
	}

	for i, entry := range entries {
		if i > 0 {
			fmt.Fprintln(p.w)
		}
		p.post(entry.Post)
		p.replies(entry.Replies)
	}
}

func (p *printer) post(post *core.Post) {
	fmt.Fprintf(p.w, "(%s) %s  [%s]  %s\n",
		avatar(post.Author),
		post.Author.Name("Unknown User"),
		post.PostType,
		p.when(post.CreatedAt),
	)
	fmt.Fprintf(p.w, "  %s\n", post.Text)
	if post.ImageURL != "" {
		fmt.Fprintf(p.w, "  image: %s\n", post.ImageURL)
	}
	fmt.Fprintf(p.w, "  like %d  dislike %d  id %s\n", len(post.Likes), len(post.Dislikes), post.ID)
}

func (p *printer) replies(replies []*core.Reply) {
	if len(replies) == 0 {
		fmt.Fprintln(p.w, "  No replies yet.")
		return
	}

	for _, reply := range replies {
		fmt.Fprintf(p.w, "  > (%s) %s: %s  %s\n",
			avatar(reply.Author),
			reply.Author.Name("Unknown"),
			reply.Text,
			p.when(reply.CreatedAt),
		)
	}
}

func (p *printer) user(user *core.User) {
	if p.dump(user) {
		return
	}
	fmt.Fprintf(p.w, "username: %s\nemail:    %s\nbio:      %s\n", user.Username, user.Email, user.Bio)
}

func (p *printer) coordinates(query string, coords core.Coordinates) {
	if p.dump(coords) {
		return
	}
	fmt.Fprintf(p.w, "%s: %s\n", query, coords)
}

func (p *printer) when(t time.Time) string {
	if t.IsZero() {
		return "unknown time"
	}
	return humanize.RelTime(t, p.now(), "ago", "from now")
}

// avatar is the avatar URL when the author has one, initials otherwise.
func avatar(author *core.Author) string {
	if author != nil && author.AvatarURL != "" {
		return author.AvatarURL
	}
	return initials(author.Name("U"))
}

func initials(name string) string {
	words := strings.Fields(name)
	return strings.ToUpper(strings.Join(lo.Map(words, func(word string, _ int) string {
		return string([]rune(word)[:1])
	}), ""))
}
