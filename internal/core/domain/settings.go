package domain

// Settings holds the persisted tool configuration.
type Settings struct {
	// DefaultRDFFormat is the RDF serialisation used when neither the
	// --rdf-format flag nor the output extension selects one.
	DefaultRDFFormat string `toml:"default_rdf_format"`

	// HistoryLimit is the default number of journal entries shown by the
	// history command.
	HistoryLimit int `toml:"history_limit"`
}

// DefaultSettings returns the configuration used before anything is saved.
func DefaultSettings() Settings {
	return Settings{
		DefaultRDFFormat: string(NQuads),
		HistoryLimit:     20,
	}
}
