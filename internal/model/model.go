package model

import "time"

// Patient is the data structure for a registered hospital patient. The
// ProfilePicture field holds the stored filename of an uploaded image, served
// below /uploads/, or nil if the patient never supplied one.
type Patient struct {
	Id             int64     `json:"id"              db:"id"`
	Name           string    `json:"name"            db:"name"`
	Email          string    `json:"email"           db:"email"`
	Phone          string    `json:"phone"           db:"phone"`
	ProfilePicture *string   `json:"profile_picture" db:"profile_picture"`
	CreatedAt      time.Time `json:"created_at"      db:"created_at"`
}

// ContactMessage is the data structure for an inquiry submitted through the
// contact form. The same address may write any number of times.
type ContactMessage struct {
	Id        int64     `json:"id"         db:"id"`
	Name      string    `json:"name"       db:"name"`
	Email     string    `json:"email"      db:"email"`
	Message   string    `json:"message"    db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
