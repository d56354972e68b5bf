package model

// Song 每日分享的歌曲
type Song struct {
	UUIDBase
	UserID        uint   `gorm:"index;not null" json:"userId"`
	User          User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Title         string `gorm:"size:255;not null" json:"title"`
	Artist        string `gorm:"size:255;not null" json:"artist"`
	Album         string `gorm:"size:255" json:"album,omitempty"`
	Genre         string `gorm:"size:100" json:"genre,omitempty"`
	Description   string `gorm:"type:text" json:"description,omitempty"`
	SpotifyURL    string `gorm:"size:512" json:"spotifyUrl,omitempty"`
	YoutubeURL    string `gorm:"size:512" json:"youtubeUrl,omitempty"`
	AppleMusicURL string `gorm:"size:512" json:"appleMusicUrl,omitempty"`
}

func (Song) TableName() string {
	return "songs"
}
