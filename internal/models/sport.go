package models

import "fmt"

// Sport identifies which match table a record belongs to
type Sport string

const (
	SportFootball Sport = "football"
	SportTennis   Sport = "tennis"
)

// ParseSport validates a sport name
func ParseSport(s string) (Sport, error) {
	switch Sport(s) {
	case SportFootball, SportTennis:
		return Sport(s), nil
	default:
		return "", fmt.Errorf("unknown sport %q", s)
	}
}
