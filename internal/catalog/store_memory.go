package catalog

import "context"

// MemStore serves a fixed set of entries.
type MemStore struct {
	entries []Entry
}

func NewMemStore(entries ...Entry) *MemStore {
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return &MemStore{entries: cp}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Load(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return NewSnapshot(s.entries, "memory", "")
}

// DemoEntries is a small catalog for local runs and tests.
func DemoEntries() []Entry {
	return []Entry{
		{ID: IntID(1), Name: "Cat Facts", Category: "Animals", Description: "Daily cat facts", Auth: "No", URL: "https://alexwohlbruck.github.io/cat-facts/"},
		{ID: IntID(2), Name: "Dog API", Category: "Animals", Description: "Based on the Stanford Dogs Dataset", Auth: "No", URL: "https://dog.ceo/dog-api/"},
		{ID: IntID(3), Name: "Open-Meteo", Category: "Weather", Description: "Global weather forecast API for non-commercial use", Auth: "No", URL: "https://open-meteo.com/"},
		{ID: IntID(4), Name: "OpenWeatherMap", Category: "Weather", Description: "Current weather, forecasts and history", Auth: "API Key", URL: "https://openweathermap.org/api"},
		{ID: IntID(5), Name: "GitHub", Category: "Development", Description: "Make use of GitHub repositories, code and user activity programmatically", Auth: "OAuth", URL: "https://docs.github.com/en/rest"},
		{ID: IntID(6), Name: "JSONPlaceholder", Category: "Development", Description: "Fake data for testing and prototyping", Auth: "No", URL: "https://jsonplaceholder.typicode.com/"},
		{ID: IntID(7), Name: "Spotify", Category: "Music", Description: "View Spotify music catalog, manage users' libraries", Auth: "OAuth", URL: "https://developer.spotify.com/documentation/web-api/"},
		{ID: IntID(8), Name: "NASA", Category: "Science", Description: "NASA data, including imagery", Auth: "API Key", URL: "https://api.nasa.gov/"},
	}
}
