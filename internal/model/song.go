package model

// FileIdentity locates a song both in the local cache and in the storage backend.
type FileIdentity struct {
	// FileUID is the stable local filename used as the cache key.
	FileUID string
	// ContainerName is the storage container holding the object.
	ContainerName string
	// ObjectName is the object key inside the container.
	ObjectName string
}

// FileMetadata describes a stored object together with its integrity data.
type FileMetadata struct {
	FileIdentity

	// OriginFileSize is the size of the file before it was uploaded.
	OriginFileSize int64
	// StoredFileSize is the size of the object as stored in the backend.
	StoredFileSize int64
	// PadCharCount is the number of padding bytes appended before storing.
	PadCharCount int
	// FileTime is the modification time of the imported file.
	FileTime string
	// MD5Hash is the hex-encoded MD5 digest of the stored bytes.
	MD5Hash string
	// Compressed reports whether the stored bytes are compressed.
	Compressed bool
	// Encrypted reports whether the stored bytes are encrypted.
	Encrypted bool
}

// NewFileMetadata creates metadata for the given identity with empty descriptive fields.
func NewFileMetadata(fileUID, containerName, objectName string) FileMetadata {
	return FileMetadata{
		FileIdentity: FileIdentity{
			FileUID:       fileUID,
			ContainerName: containerName,
			ObjectName:    objectName,
		},
	}
}

// Equal reports whether two file metadata records are identical field by field.
func (fm FileMetadata) Equal(other FileMetadata) bool {
	return fm == other
}

// SongMetadata is the catalog record for one song.
type SongMetadata struct {
	// FM holds the file identity and integrity data.
	FM FileMetadata
	// ArtistName is the decoded artist name.
	ArtistName string
	// SongName is the decoded song title.
	SongName string
	// ArtistUID references the artist row.
	ArtistUID string
	// AlbumUID references the album row.
	AlbumUID string
}

// Equal reports whether two songs carry the same metadata.
func (s *SongMetadata) Equal(other *SongMetadata) bool {
	if s == nil || other == nil {
		return s == other
	}

	return *s == *other
}

// AlbumName returns the decoded album name embedded in the object name, if any.
func (s *SongMetadata) AlbumName() string {
	return AlbumFromFileName(s.FM.ObjectName)
}

// SongListing is one row of the song listing.
type SongListing struct {
	ArtistName string
	SongName   string
}

// AlbumListing is one row of the album listing.
type AlbumListing struct {
	AlbumName  string
	ArtistName string
}

// PlaylistListing is one row of the playlist listing.
type PlaylistListing struct {
	PlaylistUID  string
	PlaylistName string
}
