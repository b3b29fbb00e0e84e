package analysis

// Report is the top-level structure for the listening report.
type Report struct {
	Metadata       ReportMetadata  `yaml:"report_metadata"`
	Overview       Overview        `yaml:"overview"`
	ArtistCards    ArtistCards     `yaml:"artist_cards"`
	TopArtists     []ArtistEntry   `yaml:"top_artists"`
	TopTracks      []TrackEntry    `yaml:"top_tracks"`
	TopAlbums      AlbumGallery    `yaml:"top_albums"`
	Featured       []FeaturedEntry `yaml:"featured_artists"`
	Discovery      DiscoveryRate   `yaml:"discovery"`
	Sessions       DeepDive        `yaml:"sessions"`
	SessionLengths SessionLengths  `yaml:"session_lengths"`
	Personality    Personality     `yaml:"personality"`
	Patterns       Patterns        `yaml:"listening_patterns"`
	Habits         Habits          `yaml:"habits"`
}

type ReportMetadata struct {
	GeneratedDate  string `yaml:"generated_date"`
	ReferenceTime  string `yaml:"reference_time"`
	Timezone       string `yaml:"timezone"`
	Range          string `yaml:"range"`
	Period         string `yaml:"period"`
	TotalPlays     int    `yaml:"total_plays"`
	TotalArtists   int    `yaml:"total_artists"`
	FirstPlay      string `yaml:"first_play,omitempty"`
	LastPlay       string `yaml:"last_play,omitempty"`
	ListeningStyle string `yaml:"listening_style"`
}

// Patterns groups the time-bucketed views.
type Patterns struct {
	TimeOfDay      TimeOfDay      `yaml:"time_of_day"`
	DayOfWeek      DayOfWeek      `yaml:"day_of_week"`
	WeekdayWeekend WeekdayWeekend `yaml:"weekday_weekend"`
	Rhythm         *RhythmPeak    `yaml:"rhythm_peak,omitempty"`
	TrackLengths   TrackLengths   `yaml:"track_lengths"`
}

// Habits groups the day-level regularity views.
type Habits struct {
	Consistency Consistency `yaml:"consistency"`
	Velocity    Velocity    `yaml:"velocity"`
	SongRepeats RepeatRatio `yaml:"song_repeats"`
	Artists     RepeatRatio `yaml:"artist_repeats"`
}
