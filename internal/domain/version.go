package domain

// Version mirrors the payload of the Kimai version endpoint.
type Version struct {
	Version   string `json:"version"`
	VersionID int    `json:"versionId"`
	Copyright string `json:"copyright"`
}
