package core

import (
	"encoding/json"
	"fmt"
	"time"
)

type PostType string

const (
	PostTypeRecommend PostType = "recommend"
	PostTypeHelp      PostType = "help"
	PostTypeUpdate    PostType = "update"
	PostTypeEvent     PostType = "event"
)

var PostTypes = []PostType{PostTypeRecommend, PostTypeHelp, PostTypeUpdate, PostTypeEvent}

type Reaction string

const (
	ReactionLike    Reaction = "like"
	ReactionDislike Reaction = "dislike"
)

// Session is what the backend hands out on login.
type Session struct {
	Token string `json:"token"`
}

type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Bio      string `json:"bio"`
}

type Author struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Coordinates is a point encoded GeoJSON style, [lng, lat], on the wire.
type Coordinates struct {
	Lng float64
	Lat float64
}

func (c Coordinates) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Lng, c.Lat})
}

func (c *Coordinates) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("coordinates: expected [lng, lat], got %d values", len(pair))
	}
	c.Lng, c.Lat = pair[0], pair[1]
	return nil
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%g, %g", c.Lng, c.Lat)
}

type Post struct {
	ID          string      `json:"_id"`
	Author      *Author     `json:"author,omitempty"`
	Text        string      `json:"text"`
	PostType    PostType    `json:"postType"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	Coordinates Coordinates `json:"coordinates"`
	Likes       []string    `json:"likes"`
	Dislikes    []string    `json:"dislikes"`
	CreatedAt   time.Time   `json:"createdAt"`
}

type Reply struct {
	ID        string    `json:"_id"`
	Author    *Author   `json:"author,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewPost is the payload of a post submission.
type NewPost struct {
	Text        string
	PostType    PostType
	Coordinates Coordinates

	// Image is optional. ImageName is sent as the multipart file name.
	Image     []byte
	ImageName string
}

func (a *Author) Name(fallback string) string {
	if a == nil || a.Username == "" {
		return fallback
	}
	return a.Username
}
