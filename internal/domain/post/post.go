package post

import "time"

// DateLayout is the display format stamped on every post.
const DateLayout = "2006/01/02 15:04"

// Post is a user-submitted board entry. Stored as JSON, newest first.
type Post struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// New stamps a post with its id and creation time.
func New(id, name, content string, now time.Time) Post {
	return Post{
		ID:        id,
		Name:      name,
		Content:   content,
		Date:      now.Format(DateLayout),
		CreatedAt: now,
	}
}
