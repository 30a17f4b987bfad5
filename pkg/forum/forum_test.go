package forum_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nexo-textboard/nexo/pkg/forum"
)

func TestUserSanitized(t *testing.T) {
	u := forum.User{
		Username:        "<b>mallory</b>",
		Password:        "<pass>word",
		Role:            `admin<script>x</script>`,
		Banned:          "false",
		BanReason:       "<i>spam</i>",
		AboutMe:         `<b>hi</b> <a href="javascript:alert(1)">me</a><div>x</div>`,
		AccountSettings: `{"theme":"<dark>"}`,
	}
	got := u.Sanitized()
	assert.Equal(t, forum.User{
		Username:        "mallory",
		Password:        "word",
		Role:            "adminx",
		Banned:          "false",
		BanReason:       "spam",
		AboutMe:         "<b>hi</b> <a>me</a>x",
		AccountSettings: `{"theme":""}`,
	}, got)
	// The original is untouched.
	assert.Equal(t, "<b>mallory</b>", u.Username)
}

func TestBanSanitized(t *testing.T) {
	got := forum.Ban{Username: "bob", Status: "true", Reason: `<img src=x onerror=alert(1)>flooding`}.Sanitized()
	assert.Equal(t, forum.Ban{Username: "bob", Status: "true", Reason: "flooding"}, got)
}

func TestPostSanitized(t *testing.T) {
	p := forum.Post{
		ID:            "42",
		Title:         "<h1>Title</h1>",
		Author:        "<b>alice</b>",
		Timestamp:     "2025-01-01",
		Topic:         "general<br>",
		Body:          "**hello** [x](javascript:alert(1))",
		Score:         7,
		RepliesLocked: true,
		Replies: []forum.Reply{
			{ID: "1", PostID: "42", Author: "<i>bob</i>", Timestamp: "t", Body: "*reply* <script>x</script>"},
		},
	}
	got := p.Sanitized()
	assert.Equal(t, "Title", got.Title)
	assert.Equal(t, "alice", got.Author)
	assert.Equal(t, "general", got.Topic)
	assert.Contains(t, got.Body, "<strong>hello</strong>")
	assert.NotContains(t, got.Body, "javascript:")
	assert.Equal(t, 7, got.Score)
	assert.True(t, got.RepliesLocked)
	if assert.Len(t, got.Replies, 1) {
		assert.Equal(t, "bob", got.Replies[0].Author)
		assert.Contains(t, got.Replies[0].Body, "<em>reply</em>")
		assert.NotContains(t, got.Replies[0].Body, "<script")
	}
	// Replies are copied, not sanitized in place.
	assert.Equal(t, "<i>bob</i>", p.Replies[0].Author)
}

func TestTopicSanitized(t *testing.T) {
	got := forum.Topic{
		ID:          "t1",
		Name:        "<u>News</u>",
		Description: `<u>All</u> the <marquee>news</marquee>`,
		AdminOnly:   true,
	}.Sanitized()
	assert.Equal(t, "News", got.Name)
	assert.Equal(t, "<u>All</u> the news", got.Description)
	assert.True(t, got.AdminOnly)
}

func TestDirectMessageSanitized(t *testing.T) {
	got := forum.DirectMessage{
		Sender:    "<b>a</b>",
		Recipient: "b",
		Title:     "<i>hi</i>",
		Body:      "see [docs](https://example.com/docs)",
	}.Sanitized()
	assert.Equal(t, "a", got.Sender)
	assert.Equal(t, "hi", got.Title)
	assert.Contains(t, got.Body, `<a href="https://example.com/docs">docs</a>`)
}

func TestSanitizedIsStable(t *testing.T) {
	// Plain fields do not change on a second pass.
	u := forum.User{Username: "<<b>x", Role: "a < b"}.Sanitized()
	again := u.Sanitized()
	assert.Equal(t, u.Username, again.Username)
	assert.Equal(t, u.Role, again.Role)
	assert.False(t, strings.Contains(again.Username, "<"))
}
