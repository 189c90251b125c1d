package main

import (
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// member is one leaderboard participant.
type member struct {
	ID         string
	Name       string
	Stars      int
	LocalScore int
	// LastStarTS is a Unix timestamp; 0 means no star earned yet.
	LastStarTS int64
	// Days maps a day number to the number of completed parts.
	Days map[int]int
}

// leaderboard is a decoded private leaderboard. Members keep document order.
type leaderboard struct {
	Event   string
	Members []member
}

var requiredMemberFields = []string{"name", "stars", "local_score", "last_star_ts", "completion_day_level"}

// parseLeaderboard decodes a private leaderboard document.
func parseLeaderboard(b []byte) (*leaderboard, error) {
	if !gjson.ValidBytes(b) {
		return nil, &payloadError{Msg: "response is not valid JSON"}
	}
	doc := gjson.ParseBytes(b)

	event := doc.Get("event")
	if !event.Exists() {
		return nil, &payloadError{Msg: `missing field "event"`}
	}
	members := doc.Get("members")
	if !members.Exists() {
		return nil, &payloadError{Msg: `missing field "members"`}
	}
	if !members.IsObject() {
		return nil, &payloadError{Msg: `"members" is not an object`}
	}

	lb := &leaderboard{Event: event.String()}
	var perr error
	members.ForEach(func(key, value gjson.Result) bool {
		m, err := parseMember(key.String(), value)
		if err != nil {
			perr = err
			return false
		}
		lb.Members = append(lb.Members, m)
		return true
	})
	if perr != nil {
		return nil, perr
	}
	return lb, nil
}

func parseMember(id string, v gjson.Result) (member, error) {
	if !v.IsObject() {
		return member{}, &payloadError{Msg: fmt.Sprintf("member %s is not an object", id)}
	}
	for _, f := range requiredMemberFields {
		if !v.Get(f).Exists() {
			return member{}, &payloadError{Msg: fmt.Sprintf("member %s: missing field %q", id, f)}
		}
	}

	m := member{
		ID:         id,
		Name:       v.Get("name").String(),
		Stars:      int(v.Get("stars").Int()),
		LocalScore: int(v.Get("local_score").Int()),
		LastStarTS: v.Get("last_star_ts").Int(),
	}
	// Anonymous users have a null name; the website labels them by id.
	if v.Get("name").Type == gjson.Null {
		m.Name = fmt.Sprintf("(anonymous user #%s)", id)
	}

	days, err := parseCompletion(id, v.Get("completion_day_level"))
	if err != nil {
		return member{}, err
	}
	m.Days = days
	return m, nil
}

// parseCompletion counts the completed parts recorded for each day.
func parseCompletion(id string, v gjson.Result) (map[int]int, error) {
	if !v.IsObject() {
		return nil, &payloadError{Msg: fmt.Sprintf("member %s: completion_day_level is not an object", id)}
	}

	days := make(map[int]int)
	var perr error
	v.ForEach(func(key, levels gjson.Result) bool {
		day, err := strconv.Atoi(key.String())
		if err != nil {
			perr = &payloadError{Msg: fmt.Sprintf("member %s: invalid day %q", id, key.String()), Err: err}
			return false
		}
		switch {
		case levels.IsObject():
			n := 0
			levels.ForEach(func(_, _ gjson.Result) bool {
				n++
				return true
			})
			days[day] = n
		case levels.IsArray():
			days[day] = len(levels.Array())
		default:
			perr = &payloadError{Msg: fmt.Sprintf("member %s: day %d levels are not a collection", id, day)}
			return false
		}
		return true
	})
	if perr != nil {
		return nil, perr
	}
	return days, nil
}
