package domain

const watchBaseURL = "https://www.youtube.com/watch?v="

// VideoItem é imutável depois de criado; a identidade é o ID do vídeo.
type VideoItem struct {
	id           string
	title        string
	thumbnailURL string
}

func NewVideoItem(id, title, thumbnailURL string) VideoItem {
	return VideoItem{
		id:           id,
		title:        title,
		thumbnailURL: thumbnailURL,
	}
}

func (v VideoItem) ID() string {
	return v.id
}

func (v VideoItem) Title() string {
	return v.title
}

func (v VideoItem) ThumbnailURL() string {
	return v.thumbnailURL
}

func (v VideoItem) WatchURL() string {
	return WatchURL(v.id)
}

// WatchURL monta o link público do vídeo, usado para abrir o navegador.
func WatchURL(videoID string) string {
	return watchBaseURL + videoID
}
