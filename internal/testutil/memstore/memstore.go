// Package memstore is an in-process implementation of the service stores. It
// mirrors the constraints the PostgreSQL schema enforces and is used by
// service and handler tests.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"likering/internal/model"
	"likering/internal/repository"
)

type pair struct{ a, b string }

type edge struct {
	seq int64
	at  time.Time
}

// Store holds every table. Use the typed views returned by Users, Videos and
// the rest to satisfy the individual store interfaces.
type Store struct {
	mu sync.RWMutex

	seq  int64
	last time.Time

	users    map[string]*model.User
	videos   map[string]*model.Video
	likes    map[pair]edge // (video, user)
	views    map[pair]edge // (video, user)
	comments map[string]*model.Comment
	follows  map[pair]edge // (follower, following)
	messages map[string]*model.Message
}

// New returns an empty store.
func New() *Store {
	return &Store{
		users:    make(map[string]*model.User),
		videos:   make(map[string]*model.Video),
		likes:    make(map[pair]edge),
		views:    make(map[pair]edge),
		comments: make(map[string]*model.Comment),
		follows:  make(map[pair]edge),
		messages: make(map[string]*model.Message),
	}
}

// tick returns a strictly increasing timestamp so insertion order survives sorting.
func (s *Store) tick() time.Time {
	now := time.Now().UTC()
	if !now.After(s.last) {
		now = s.last.Add(time.Microsecond)
	}
	s.last = now
	s.seq++
	return now
}

func (s *Store) Users() *Users       { return &Users{s} }
func (s *Store) Videos() *Videos     { return &Videos{s} }
func (s *Store) Comments() *Comments { return &Comments{s} }
func (s *Store) Follows() *Follows   { return &Follows{s} }
func (s *Store) Messages() *Messages { return &Messages{s} }

// SetVideoCounters overwrites cached counters, for simulating drift.
func (s *Store) SetVideoCounters(id string, likes, comments, views int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.videos[id]; ok {
		v.LikeCount, v.CommentCount, v.ViewCount = likes, comments, views
	}
}

// Users implements service.UserStore.
type Users struct{ s *Store }

func (u *Users) Create(_ context.Context, user *model.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if _, ok := u.s.users[user.Username]; ok {
		return repository.ErrDuplicate
	}
	now := u.s.tick()
	user.ID = u.s.seq
	user.CreatedAt, user.UpdatedAt = now, now
	if user.Plan == "" {
		user.Plan = "blue"
	}
	if user.State == "" {
		user.State = "active"
	}
	cp := *user
	u.s.users[user.Username] = &cp
	return nil
}

func (u *Users) GetByUsername(_ context.Context, username string) (*model.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	user, ok := u.s.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (u *Users) UpdatePassword(_ context.Context, username, hash string) (bool, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	user, ok := u.s.users[username]
	if !ok {
		return false, nil
	}
	user.PasswordHash = hash
	user.UpdatedAt = u.s.tick()
	return true, nil
}

func (u *Users) UpdateImage(_ context.Context, username, imageURL string) (bool, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	user, ok := u.s.users[username]
	if !ok {
		return false, nil
	}
	user.ImageURL = imageURL
	user.UpdatedAt = u.s.tick()
	return true, nil
}

func (u *Users) GetStats(_ context.Context, username string) (*repository.UserStats, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	var stats repository.UserStats
	for p := range u.s.follows {
		if p.b == username {
			stats.Followers++
		}
		if p.a == username {
			stats.Following++
		}
	}
	for _, v := range u.s.videos {
		if v.Username == username {
			stats.Posts++
			stats.Likes += v.LikeCount
		}
	}
	return &stats, nil
}

// Videos implements service.VideoStore, service.FeedStore and service.EngagementStore.
type Videos struct{ s *Store }

func (v *Videos) Create(_ context.Context, video *model.Video) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if _, ok := v.s.videos[video.ID]; ok {
		return repository.ErrDuplicate
	}
	now := v.s.tick()
	video.CreatedAt, video.UpdatedAt = now, now
	cp := *video
	v.s.videos[video.ID] = &cp
	return nil
}

func (v *Videos) GetByID(_ context.Context, id string) (*model.Video, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	video, ok := v.s.videos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *video
	return &cp, nil
}

func (v *Videos) ListByUser(_ context.Context, username string) ([]model.Video, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	return v.s.selectVideos(func(video *model.Video) bool { return video.Username == username }), nil
}

func (v *Videos) ListLikedByUser(_ context.Context, username string) ([]model.Video, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()

	type liked struct {
		video model.Video
		seq   int64
	}
	var rows []liked
	for p, e := range v.s.likes {
		if p.b != username {
			continue
		}
		if video, ok := v.s.videos[p.a]; ok {
			rows = append(rows, liked{*video, e.seq})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })

	videos := make([]model.Video, 0, len(rows))
	for _, r := range rows {
		videos = append(videos, r.video)
	}
	return videos, nil
}

func (v *Videos) ListByIDs(_ context.Context, ids []string) ([]model.Video, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	videos := make([]model.Video, 0, len(ids))
	for _, id := range ids {
		if video, ok := v.s.videos[id]; ok {
			videos = append(videos, *video)
		}
	}
	return videos, nil
}

func (v *Videos) UpdateDetails(_ context.Context, id, title, description string) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if video, ok := v.s.videos[id]; ok {
		video.Title, video.Description = title, description
		video.UpdatedAt = v.s.tick()
	}
	return nil
}

// Delete removes the video with its likes, views and comments.
func (v *Videos) Delete(_ context.Context, id string) (bool, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if _, ok := v.s.videos[id]; !ok {
		return false, nil
	}
	delete(v.s.videos, id)
	for p := range v.s.likes {
		if p.a == id {
			delete(v.s.likes, p)
		}
	}
	for p := range v.s.views {
		if p.a == id {
			delete(v.s.views, p)
		}
	}
	for cid, c := range v.s.comments {
		if c.VideoID == id {
			delete(v.s.comments, cid)
		}
	}
	return true, nil
}

func (v *Videos) SearchByKeyword(_ context.Context, keyword string, offset, limit int) ([]model.Video, int64, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	kw := strings.ToLower(keyword)
	matches := v.s.selectVideos(func(video *model.Video) bool {
		return strings.Contains(strings.ToLower(video.Title), kw) ||
			strings.Contains(strings.ToLower(video.Description), kw) ||
			strings.Contains(strings.ToLower(video.Username), kw)
	})

	total := int64(len(matches))
	if offset >= len(matches) {
		return []model.Video{}, total, nil
	}
	end := offset + limit
	if end > len(matches) {
		end = len(matches)
	}
	return matches[offset:end], total, nil
}

func (v *Videos) ReconcileCounters(_ context.Context, id string) (bool, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	video, ok := v.s.videos[id]
	if !ok {
		return false, nil
	}
	return v.s.reconcile(video), nil
}

func (v *Videos) ReconcileAll(_ context.Context) (int64, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var fixed int64
	for _, video := range v.s.videos {
		if v.s.reconcile(video) {
			fixed++
		}
	}
	return fixed, nil
}

func (v *Videos) ListFeed(_ context.Context, viewer string) ([]repository.FeedRow, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()

	videos := v.s.selectVideos(func(*model.Video) bool { return true })
	rows := make([]repository.FeedRow, 0, len(videos))
	for _, video := range videos {
		row := repository.FeedRow{
			ID:           video.ID,
			Username:     video.Username,
			Title:        video.Title,
			Description:  video.Description,
			VideoURL:     video.VideoURL,
			ThumbnailURL: video.ThumbnailURL,
			MusicURL:     video.MusicURL,
			MusicName:    video.MusicName,
			LikeCount:    video.LikeCount,
			CommentCount: v.s.countComments(video.ID),
			ViewCount:    video.ViewCount,
			CreatedAt:    video.CreatedAt,
		}
		if owner, ok := v.s.users[video.Username]; ok {
			row.ProfileImg = owner.ImageURL
		}
		if viewer != "" {
			_, row.IsLiked = v.s.likes[pair{video.ID, viewer}]
			_, row.IsFollowing = v.s.follows[pair{viewer, video.Username}]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (v *Videos) Like(_ context.Context, videoID, username string) (int64, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	key := pair{videoID, username}
	if _, ok := v.s.likes[key]; ok {
		return 0, repository.ErrDuplicate
	}
	video, ok := v.s.videos[videoID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	at := v.s.tick()
	v.s.likes[key] = edge{seq: v.s.seq, at: at}
	video.LikeCount++
	return video.LikeCount, nil
}

func (v *Videos) RecordView(_ context.Context, videoID, username string) (int64, bool, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	video, ok := v.s.videos[videoID]
	if !ok {
		return 0, false, repository.ErrNotFound
	}
	key := pair{videoID, username}
	if _, ok := v.s.views[key]; ok {
		return video.ViewCount, false, nil
	}
	at := v.s.tick()
	v.s.views[key] = edge{seq: v.s.seq, at: at}
	video.ViewCount++
	return video.ViewCount, true, nil
}

// Comments implements service.CommentStore.
type Comments struct{ s *Store }

func (c *Comments) Create(_ context.Context, comment *model.Comment) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if _, ok := c.s.comments[comment.ID]; ok {
		return repository.ErrDuplicate
	}
	now := c.s.tick()
	comment.CreatedAt, comment.UpdatedAt = now, now
	cp := *comment
	c.s.comments[comment.ID] = &cp
	if video, ok := c.s.videos[comment.VideoID]; ok {
		video.CommentCount++
	}
	return nil
}

func (c *Comments) GetByID(_ context.Context, id string) (*model.Comment, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	comment, ok := c.s.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *comment
	return &cp, nil
}

func (c *Comments) UpdateText(_ context.Context, id, text string) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if comment, ok := c.s.comments[id]; ok {
		comment.Text = text
		comment.Edited = true
		comment.UpdatedAt = c.s.tick()
	}
	return nil
}

func (c *Comments) Delete(_ context.Context, id, videoID string) (bool, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	comment, ok := c.s.comments[id]
	if !ok || comment.VideoID != videoID {
		return false, nil
	}
	delete(c.s.comments, id)
	if video, ok := c.s.videos[videoID]; ok && video.CommentCount > 0 {
		video.CommentCount--
	}
	return true, nil
}

func (c *Comments) ListByVideo(_ context.Context, videoID string) ([]repository.CommentRow, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	rows := make([]repository.CommentRow, 0)
	for _, comment := range c.s.comments {
		if comment.VideoID != videoID {
			continue
		}
		row := repository.CommentRow{
			ID:        comment.ID,
			VideoID:   comment.VideoID,
			Username:  comment.Username,
			Text:      comment.Text,
			Edited:    comment.Edited,
			CreatedAt: comment.CreatedAt,
			UpdatedAt: comment.UpdatedAt,
		}
		if author, ok := c.s.users[comment.Username]; ok {
			row.ProfileImg = author.ImageURL
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	return rows, nil
}

func (c *Comments) SyncVideoCount(_ context.Context, videoID string, count int64) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if video, ok := c.s.videos[videoID]; ok {
		video.CommentCount = count
	}
	return nil
}

// Follows implements service.FollowStore.
type Follows struct{ s *Store }

func (f *Follows) Create(_ context.Context, follower, following string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	key := pair{follower, following}
	if _, ok := f.s.follows[key]; ok {
		return repository.ErrDuplicate
	}
	at := f.s.tick()
	f.s.follows[key] = edge{seq: f.s.seq, at: at}
	return nil
}

func (f *Follows) Delete(_ context.Context, follower, following string) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	key := pair{follower, following}
	if _, ok := f.s.follows[key]; !ok {
		return false, nil
	}
	delete(f.s.follows, key)
	return true, nil
}

func (f *Follows) Exists(_ context.Context, follower, following string) (bool, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()
	_, ok := f.s.follows[pair{follower, following}]
	return ok, nil
}

// Messages implements service.MessageStore.
type Messages struct{ s *Store }

func (m *Messages) Create(_ context.Context, msg *model.Message) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.messages[msg.ID]; ok {
		return repository.ErrDuplicate
	}
	msg.CreatedAt = m.s.tick()
	cp := *msg
	m.s.messages[msg.ID] = &cp
	return nil
}

func (m *Messages) GetByID(_ context.Context, id string) (*model.Message, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	msg, ok := m.s.messages[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *msg
	return &cp, nil
}

func (m *Messages) ListBetween(_ context.Context, user1, user2 string) ([]model.Message, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	out := make([]model.Message, 0)
	for _, msg := range m.s.messages {
		if (msg.FromUsername == user1 && msg.ToUsername == user2) ||
			(msg.FromUsername == user2 && msg.ToUsername == user1) {
			out = append(out, *msg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *Messages) ListConversations(_ context.Context, username string) ([]repository.ConversationRow, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	latest := make(map[string]*model.Message)
	unread := make(map[string]int64)
	for _, msg := range m.s.messages {
		var peer string
		switch username {
		case msg.FromUsername:
			peer = msg.ToUsername
		case msg.ToUsername:
			peer = msg.FromUsername
			if !msg.IsRead {
				unread[peer]++
			}
		default:
			continue
		}
		if cur, ok := latest[peer]; !ok || msg.CreatedAt.After(cur.CreatedAt) {
			latest[peer] = msg
		}
	}

	rows := make([]repository.ConversationRow, 0, len(latest))
	for peer, msg := range latest {
		row := repository.ConversationRow{
			Peer:        peer,
			LastText:    msg.Text,
			LastAt:      msg.CreatedAt,
			LastFrom:    msg.FromUsername,
			UnreadCount: unread[peer],
		}
		if u, ok := m.s.users[peer]; ok {
			row.ImageURL = u.ImageURL
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].LastAt.After(rows[j].LastAt) })
	return rows, nil
}

func (m *Messages) DeleteUnread(_ context.Context, id, from string) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	msg, ok := m.s.messages[id]
	if !ok || msg.FromUsername != from || msg.IsRead {
		return false, nil
	}
	delete(m.s.messages, id)
	return true, nil
}

func (m *Messages) MarkRead(_ context.Context, from, to string) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	now := m.s.tick()
	var marked int64
	for _, msg := range m.s.messages {
		if msg.FromUsername == from && msg.ToUsername == to && !msg.IsRead {
			msg.IsRead = true
			at := now
			msg.ReadAt = &at
			marked++
		}
	}
	return marked, nil
}

// selectVideos returns copies of matching videos, newest first. Callers hold the lock.
func (s *Store) selectVideos(match func(*model.Video) bool) []model.Video {
	out := make([]model.Video, 0)
	for _, video := range s.videos {
		if match(video) {
			out = append(out, *video)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *Store) countComments(videoID string) int64 {
	var n int64
	for _, c := range s.comments {
		if c.VideoID == videoID {
			n++
		}
	}
	return n
}

// reconcile recomputes one video's counters and reports whether they changed.
func (s *Store) reconcile(video *model.Video) bool {
	var likes, views int64
	for p := range s.likes {
		if p.a == video.ID {
			likes++
		}
	}
	for p := range s.views {
		if p.a == video.ID {
			views++
		}
	}
	comments := s.countComments(video.ID)
	if video.LikeCount == likes && video.CommentCount == comments && video.ViewCount == views {
		return false
	}
	video.LikeCount, video.CommentCount, video.ViewCount = likes, comments, views
	return true
}
