package domain

// PlaylistStore guarda a última lista carregada com sucesso.
// Só é escrito a partir do loop da interface, então não precisa de lock.
type PlaylistStore struct {
	items []VideoItem
}

func NewPlaylistStore() *PlaylistStore {
	return &PlaylistStore{items: []VideoItem{}}
}

// Items devolve uma cópia, para que quem chama não altere o conteúdo do store.
func (s *PlaylistStore) Items() []VideoItem {
	out := make([]VideoItem, len(s.items))
	copy(out, s.items)
	return out
}

// Replace limpa e preenche o store de uma vez.
func (s *PlaylistStore) Replace(items []VideoItem) {
	fresh := make([]VideoItem, len(items))
	copy(fresh, items)
	s.items = fresh
}

func (s *PlaylistStore) Reset() {
	s.items = []VideoItem{}
}

func (s *PlaylistStore) Len() int {
	return len(s.items)
}

func (s *PlaylistStore) IsEmpty() bool {
	return len(s.items) == 0
}
