package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice stores a string array as a JSON text column
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}

	return json.Unmarshal(bytesToParse, s)
}

// EntityMap stores the key-entity categories as a JSON text column
type EntityMap struct {
	People        []string `json:"people"`
	Organizations []string `json:"organizations"`
	Locations     []string `json:"locations"`
}

// Value implements the driver.Valuer interface
func (m EntityMap) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (m *EntityMap) Scan(value interface{}) error {
	if value == nil {
		*m = EntityMap{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("EntityMap Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*m = EntityMap{}
		return nil
	}

	return json.Unmarshal(bytesToParse, m)
}

// Quiz is the quizzes table row
type Quiz struct {
	ID          string      `db:"id"`
	URL         string      `db:"url"`
	Title       string      `db:"title"`
	Summary     string      `db:"summary"`
	KeyEntities EntityMap   `db:"key_entities"`
	Sections    StringSlice `db:"sections"`
	CreatedAt   time.Time   `db:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at"`
}

// Question is the questions table row. Position preserves generation order.
type Question struct {
	ID           string      `db:"id"`
	QuizID       string      `db:"quiz_id"`
	Position     int         `db:"position"`
	QuestionText string      `db:"question_text"`
	Options      StringSlice `db:"options"`
	Answer       string      `db:"answer"`
	Difficulty   string      `db:"difficulty"`
	Explanation  string      `db:"explanation"`
	CreatedAt    time.Time   `db:"created_at"`
}

// RelatedTopic is the related_topics table row
type RelatedTopic struct {
	ID        string `db:"id"`
	QuizID    string `db:"quiz_id"`
	Position  int    `db:"position"`
	TopicName string `db:"topic_name"`
}
