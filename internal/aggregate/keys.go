package aggregate

import (
	"time"

	"github.com/ademuri/listening-stats/internal/playback"
)

// DateLayout is the calendar-date key format.
const DateLayout = "2006-01-02"

// SlotsPerDay is the number of 30-minute slots in a day.
const SlotsPerDay = 48

func ByArtist(e playback.PlayEvent) string { return e.ArtistName }

func ByTrack(e playback.PlayEvent) playback.TrackKey { return e.Track() }

func ByAlbum(e playback.PlayEvent) playback.AlbumKey { return e.Album() }

func TrackName(e playback.PlayEvent) string { return e.TrackName }

// TrackID identifies a track within any grouping.
func TrackID(e playback.PlayEvent) string { return e.TrackName + "|||" + e.ArtistName }

// ByFeatured maps an event to its featured artists.
func ByFeatured(e playback.PlayEvent) []string { return e.FeaturedArtistNames() }

func ByDate(loc *time.Location) KeyFunc[string] {
	return func(e playback.PlayEvent) string { return e.PlayedAt.In(loc).Format(DateLayout) }
}

func ByHour(loc *time.Location) KeyFunc[int] {
	return func(e playback.PlayEvent) int { return e.PlayedAt.In(loc).Hour() }
}

func ByWeekday(loc *time.Location) KeyFunc[time.Weekday] {
	return func(e playback.PlayEvent) time.Weekday { return e.PlayedAt.In(loc).Weekday() }
}

// BySlot keys an event by its 30-minute slot of the day: hour*2, plus one in
// the second half of the hour.
func BySlot(loc *time.Location) KeyFunc[int] {
	return func(e playback.PlayEvent) int { return Slot(e.PlayedAt.In(loc)) }
}

func Slot(t time.Time) int {
	s := t.Hour() * 2
	if t.Minute() >= 30 {
		s++
	}
	return s
}

// ByMonth keys an event by calendar month, "2006-01".
func ByMonth(loc *time.Location) KeyFunc[string] {
	return func(e playback.PlayEvent) string { return e.PlayedAt.In(loc).Format("2006-01") }
}

// DistinctDate is a WithDistinct extractor counting distinct calendar dates.
func DistinctDate(loc *time.Location) func(playback.PlayEvent) string {
	return ByDate(loc)
}
