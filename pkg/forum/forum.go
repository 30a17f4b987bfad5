// Package forum defines the records the storage layer writes and how each of their text fields
// is sanitized before it is persisted.
package forum

import (
	"github.com/nexo-textboard/nexo/pkg/sanitize"
)

// User is an account row.  Password holds the submitted password before hashing.
type User struct {
	Username        string
	Password        string
	Role            string
	Banned          string
	BanReason       string
	AboutMe         string
	AccountSettings string
}

// Sanitized returns a copy of u safe to persist.
func (u User) Sanitized() User {
	return User{
		Username:        sanitize.Plain(u.Username),
		Password:        sanitize.Plain(u.Password),
		Role:            sanitize.Plain(u.Role),
		Banned:          sanitize.Plain(u.Banned),
		BanReason:       sanitize.Plain(u.BanReason),
		AboutMe:         sanitize.Rich(u.AboutMe),
		AccountSettings: sanitize.Plain(u.AccountSettings),
	}
}

// Ban is a moderation action against a user.
type Ban struct {
	Username string
	Status   string
	Reason   string
}

// Sanitized returns a copy of b safe to persist.
func (b Ban) Sanitized() Ban {
	return Ban{
		Username: sanitize.Plain(b.Username),
		Status:   sanitize.Plain(b.Status),
		Reason:   sanitize.Plain(b.Reason),
	}
}

// Post is a public post and its replies.
type Post struct {
	ID            string
	Title         string
	Author        string
	Timestamp     string
	Topic         string
	Body          string
	Score         int
	Deleted       bool
	Archived      bool
	RepliesLocked bool
	Replies       []Reply
}

// Sanitized returns a copy of p, including its replies, safe to persist.
func (p Post) Sanitized() Post {
	out := p
	out.ID = sanitize.Plain(p.ID)
	out.Title = sanitize.Plain(p.Title)
	out.Author = sanitize.Plain(p.Author)
	out.Timestamp = sanitize.Plain(p.Timestamp)
	out.Topic = sanitize.Plain(p.Topic)
	out.Body = sanitize.Markdown(p.Body)
	if p.Replies != nil {
		out.Replies = make([]Reply, len(p.Replies))
		for i, r := range p.Replies {
			out.Replies[i] = r.Sanitized()
		}
	}
	return out
}

// Reply is a reply to a Post.
type Reply struct {
	ID        string
	PostID    string
	Author    string
	Timestamp string
	Body      string
}

// Sanitized returns a copy of r safe to persist.
func (r Reply) Sanitized() Reply {
	return Reply{
		ID:        sanitize.Plain(r.ID),
		PostID:    sanitize.Plain(r.PostID),
		Author:    sanitize.Plain(r.Author),
		Timestamp: sanitize.Plain(r.Timestamp),
		Body:      sanitize.Markdown(r.Body),
	}
}

// Topic groups posts.
type Topic struct {
	ID          string
	Name        string
	Description string
	AdminOnly   bool
	Locked      bool
	Archived    bool
}

// Sanitized returns a copy of t safe to persist.
func (t Topic) Sanitized() Topic {
	out := t
	out.ID = sanitize.Plain(t.ID)
	out.Name = sanitize.Plain(t.Name)
	out.Description = sanitize.Rich(t.Description)
	return out
}

// DirectMessage is a private message between two users.
type DirectMessage struct {
	ID              string
	Sender          string
	Recipient       string
	Timestamp       string
	Title           string
	Body            string
	ReadByRecipient bool
}

// Sanitized returns a copy of m safe to persist.
func (m DirectMessage) Sanitized() DirectMessage {
	out := m
	out.ID = sanitize.Plain(m.ID)
	out.Sender = sanitize.Plain(m.Sender)
	out.Recipient = sanitize.Plain(m.Recipient)
	out.Timestamp = sanitize.Plain(m.Timestamp)
	out.Title = sanitize.Plain(m.Title)
	out.Body = sanitize.Markdown(m.Body)
	return out
}
