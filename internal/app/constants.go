package app

const (
	Name = "mindlink"

	ConfigFilename  = "config.json"
	JournalFilename = "session.db"
	LogFilename     = "mindlink.log"
)
