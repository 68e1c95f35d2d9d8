package model

// PlaylistSong references a song in a playlist by its decoded names.
type PlaylistSong struct {
	Artist string `json:"artist" yaml:"artist"`
	Album  string `json:"album"  yaml:"album"`
	Song   string `json:"song"   yaml:"song"`
}

// ObjectPrefix returns the object name prefix of the referenced song, without extension.
func (ps PlaylistSong) ObjectPrefix() string {
	return SongObjectName(ps.Artist, ps.Album, ps.Song, "")
}

// Playlist is the document format of an imported playlist file.
type Playlist struct {
	Name  string         `json:"name"  yaml:"name"`
	Tags  string         `json:"tags"  yaml:"tags"`
	Songs []PlaylistSong `json:"songs" yaml:"songs"`
}
