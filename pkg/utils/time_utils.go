package utils

import "time"

// Brazil time location (BRT, -03:00); billing periods are anchored there.
var brLoc = func() *time.Location {
	if loc, err := time.LoadLocation("America/Sao_Paulo"); err == nil {
		return loc
	}
	return time.FixedZone("BRT", -3*3600)
}()

func BrazilLocation() *time.Location { return brLoc }

// Seconds are the storage unit for every timestamp column.
func NowUnixSeconds() int64 { return time.Now().Unix() }
