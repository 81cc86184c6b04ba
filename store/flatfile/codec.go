/*
codec.go - Line codec for the ;-delimited record files

PURPOSE:
  Encodes and decodes one entity per text line. Field values must never
  contain the delimiter; this is an accepted constraint of the format,
  not something the codec escapes.

LAYOUTS:
  Users.txt:        username;password;role;level;currentPoints;totalExperience
  Tasks.txt:        id;title;description;points;status;type;assignee;creator;rating;dueDate
  Wishes.txt:       id;title;cost;status;owner
  Achievements.txt: id;title;description;reward;creatorRole

  Task lines written before the creator field existed have 9 fields
  (no creator); they still decode, with Creator reconstructed as "".
  Every other entity requires its exact field count.

  Dates are ISO calendar dates (YYYY-MM-DD); an absent date is an empty
  field. Enumerated fields match by exact case-sensitive name.
*/
package flatfile

import (
	"strconv"
	"strings"

	"github.com/warp/chore-engine/core"
)

// Delimiter separates fields within a record line.
const Delimiter = core.FieldDelimiter

// =============================================================================
// USER
// =============================================================================

func EncodeUser(u core.User) string {
	return strings.Join([]string{
		u.Username,
		u.Password,
		string(u.Role),
		strconv.Itoa(u.Level),
		strconv.Itoa(u.CurrentPoints),
		strconv.Itoa(u.TotalExperience),
	}, Delimiter)
}

func DecodeUser(line string) (core.User, error) {
	parts := strings.Split(line, Delimiter)
	if len(parts) != 6 {
		return core.User{}, &core.DecodeError{Entity: "user", Line: line,
			Reason: "expected 6 fields, got " + strconv.Itoa(len(parts))}
	}

	role, err := core.ParseRole(parts[2])
	if err != nil {
		return core.User{}, &core.DecodeError{Entity: "user", Line: line, Reason: err.Error()}
	}
	level, err := decodeInt("user", line, "level", parts[3])
	if err != nil {
		return core.User{}, err
	}
	points, err := decodeInt("user", line, "currentPoints", parts[4])
	if err != nil {
		return core.User{}, err
	}
	exp, err := decodeInt("user", line, "totalExperience", parts[5])
	if err != nil {
		return core.User{}, err
	}

	return core.User{
		Username:        parts[0],
		Password:        parts[1],
		Role:            role,
		Level:           level,
		CurrentPoints:   points,
		TotalExperience: exp,
	}, nil
}

// =============================================================================
// TASK
// =============================================================================

func EncodeTask(t core.Task) string {
	return strings.Join([]string{
		strconv.Itoa(t.ID),
		t.Title,
		t.Description,
		strconv.Itoa(t.Points),
		string(t.Status),
		string(t.Type),
		t.Assignee,
		t.Creator,
		strconv.Itoa(t.Rating),
		t.DueDate.String(),
	}, Delimiter)
}

// DecodeTask accepts the current 10-field layout and the legacy 9-field
// layout without a creator column.
func DecodeTask(line string) (core.Task, error) {
	parts := strings.Split(line, Delimiter)

	var creator, ratingField, dueField string
	switch len(parts) {
	case 9:
		creator, ratingField, dueField = "", parts[7], parts[8]
	case 10:
		creator, ratingField, dueField = parts[7], parts[8], parts[9]
	default:
		return core.Task{}, &core.DecodeError{Entity: "task", Line: line,
			Reason: "expected 9 or 10 fields, got " + strconv.Itoa(len(parts))}
	}

	id, err := decodeInt("task", line, "id", parts[0])
	if err != nil {
		return core.Task{}, err
	}
	points, err := decodeInt("task", line, "points", parts[3])
	if err != nil {
		return core.Task{}, err
	}
	status, err := core.ParseTaskStatus(parts[4])
	if err != nil {
		return core.Task{}, &core.DecodeError{Entity: "task", Line: line, Reason: err.Error()}
	}
	typ, err := core.ParseTaskType(parts[5])
	if err != nil {
		return core.Task{}, &core.DecodeError{Entity: "task", Line: line, Reason: err.Error()}
	}
	rating, err := decodeInt("task", line, "rating", ratingField)
	if err != nil {
		return core.Task{}, err
	}
	due, err := core.ParseDate(dueField)
	if err != nil {
		return core.Task{}, &core.DecodeError{Entity: "task", Line: line,
			Reason: "bad dueDate " + dueField}
	}

	return core.Task{
		ID:          id,
		Title:       parts[1],
		Description: parts[2],
		Points:      points,
		Status:      status,
		Type:        typ,
		Assignee:    parts[6],
		Creator:     creator,
		Rating:      rating,
		DueDate:     due,
	}, nil
}

// =============================================================================
// WISH
// =============================================================================

func EncodeWish(w core.Wish) string {
	return strings.Join([]string{
		strconv.Itoa(w.ID),
		w.Title,
		strconv.Itoa(w.Cost),
		string(w.Status),
		w.Owner,
	}, Delimiter)
}

func DecodeWish(line string) (core.Wish, error) {
	parts := strings.Split(line, Delimiter)
	if len(parts) != 5 {
		return core.Wish{}, &core.DecodeError{Entity: "wish", Line: line,
			Reason: "expected 5 fields, got " + strconv.Itoa(len(parts))}
	}

	id, err := decodeInt("wish", line, "id", parts[0])
	if err != nil {
		return core.Wish{}, err
	}
	cost, err := decodeInt("wish", line, "cost", parts[2])
	if err != nil {
		return core.Wish{}, err
	}
	status, err := core.ParseWishStatus(parts[3])
	if err != nil {
		return core.Wish{}, &core.DecodeError{Entity: "wish", Line: line, Reason: err.Error()}
	}

	return core.Wish{
		ID:     id,
		Title:  parts[1],
		Cost:   cost,
		Status: status,
		Owner:  parts[4],
	}, nil
}

// =============================================================================
// ACHIEVEMENT
// =============================================================================

func EncodeAchievement(a core.Achievement) string {
	return strings.Join([]string{
		strconv.Itoa(a.ID),
		a.Title,
		a.Description,
		a.Reward,
		string(a.CreatorRole),
	}, Delimiter)
}

func DecodeAchievement(line string) (core.Achievement, error) {
	parts := strings.Split(line, Delimiter)
	if len(parts) != 5 {
		return core.Achievement{}, &core.DecodeError{Entity: "achievement", Line: line,
			Reason: "expected 5 fields, got " + strconv.Itoa(len(parts))}
	}

	id, err := decodeInt("achievement", line, "id", parts[0])
	if err != nil {
		return core.Achievement{}, err
	}
	role, err := core.ParseRole(parts[4])
	if err != nil {
		return core.Achievement{}, &core.DecodeError{Entity: "achievement", Line: line, Reason: err.Error()}
	}

	return core.Achievement{
		ID:          id,
		Title:       parts[1],
		Description: parts[2],
		Reward:      parts[3],
		CreatorRole: role,
	}, nil
}

func decodeInt(entity, line, field, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &core.DecodeError{Entity: entity, Line: line,
			Reason: "non-integer " + field + " " + strconv.Quote(value)}
	}
	return n, nil
}
