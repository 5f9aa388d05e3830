// Package models defines the study-set schemas exchanged with the remote
// quizzer API.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID identifies a study set. The remote service sends numeric ids; string ids
// are accepted as well and both are kept in textual form.
type ID string

func (id ID) String() string { return string(id) }

// UnmarshalJSON accepts a JSON number or a JSON string. null leaves the id
// empty so the schema validator can reject it.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("study set id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes integer-looking ids as numbers and anything else as a string.
func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// StudySet is one element of the study-sets collection.
type StudySet struct {
	ID    ID     `json:"id" validate:"required"`
	Title string `json:"title"`
}

// HasTitle reports whether the set has something to display.
func (s StudySet) HasTitle() bool { return s.Title != "" }

func (s StudySet) String() string {
	return fmt.Sprintf("%s\t%s", s.ID, s.Title)
}

// CreateStudySetRequest is the POST /study-sets body.
type CreateStudySetRequest struct {
	Title string `json:"title"`
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
