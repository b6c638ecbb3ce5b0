package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"chatterly/internal/core"
	"chatterly/internal/geocode"
	"chatterly/pkg/async"

	"github.com/samber/lo"
)

var (
	ErrEmptyReply      = errors.New("reply text is empty")
	ErrInvalidReaction = errors.New("invalid reaction")
	ErrNoCoordinates   = errors.New("no coordinates found")
)

// Entry is a displayed post along with its replies.
type Entry struct {
	Post    *core.Post
	Replies []*core.Reply
}

// Feed keeps the displayed post list in sync with the backend. Mutations are
// never applied locally: every reaction or reply is followed by a refetch of
// the list, which in turn refetches the replies of every displayed post.
type Feed struct {
	Logger   *slog.Logger
	API      core.PostAPI
	Geocoder core.Geocoder
	Sessions core.SessionStore

	mu      sync.RWMutex
	filter  core.Filter
	posts   []*core.Post
	replies map[string][]*core.Reply

	// syncMu orders post list application and reply task bookkeeping.
	syncMu  sync.Mutex
	issued  atomic.Uint64
	applied uint64
	jobs    *async.KeyedJobs[string, []*core.Reply]
}

func New(api core.PostAPI, geocoder core.Geocoder, sessions core.SessionStore, logger *slog.Logger) *Feed {
	f := &Feed{
		Logger:   logger,
		API:      api,
		Geocoder: geocoder,
		Sessions: sessions,
	}
	f.setup()
	return f
}

// Close cancels the reply fetches in flight.
func (f *Feed) Close() {
	f.jobs.StopAll()
}

func (f *Feed) setup() {
	if f.Logger == nil {
		f.Logger = slog.Default()
	}
	f.Logger = f.Logger.With("component", "feed.Feed")
	f.filter = core.NewFilter()
	f.replies = map[string][]*core.Reply{}
	f.jobs = async.NewKeyedJobs[string, []*core.Reply]()
}

// Open loads the unfiltered feed. Without a session it fails with
// core.ErrNotAuthenticated and touches nothing.
func (f *Feed) Open(ctx context.Context) error {
	token, err := f.Sessions.Token(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		return core.ErrNotAuthenticated
	}

	return f.Refresh(ctx)
}

// Refresh refetches the post list with the current filter. A response older
// than one already applied is dropped. Reply fetches started here are bound
// to ctx.
func (f *Feed) Refresh(ctx context.Context) error {
	filter := f.Filter()
	seq := f.issued.Add(1)

	posts, err := f.API.GetPosts(ctx, filter)
	if err != nil {
		f.Logger.Error("failed to fetch posts", "error", err)
		return err
	}

	f.applyPosts(ctx, seq, posts)
	return nil
}

// SetFilter replaces the filter without fetching.
func (f *Feed) SetFilter(filter core.Filter) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filter = filter
}

// ApplyFilter replaces the filter and refetches.
func (f *Feed) ApplyFilter(ctx context.Context, filter core.Filter) error {
	f.SetFilter(filter)
	return f.Refresh(ctx)
}

// Locate geocodes location into the filter and refetches once with it. When
// the place cannot be resolved the previously resolved coordinates are
// dropped and nothing is fetched.
func (f *Feed) Locate(ctx context.Context, location string) error {
	coords, ok, err := f.Geocoder.Lookup(ctx, location)
	if errors.Is(err, geocode.ErrEmptyQuery) {
		return err
	}
	if err != nil {
		f.clearCoordinates()
		f.Logger.Error("failed to fetch coordinates", "location", location, "error", err)
		return err
	}
	if !ok {
		f.clearCoordinates()
		return fmt.Errorf("%w: %s", ErrNoCoordinates, location)
	}

	f.mu.Lock()
	f.filter.LocationName = location
	f.filter.SetCoordinates(coords)
	f.mu.Unlock()

	return f.Refresh(ctx)
}

func (f *Feed) React(ctx context.Context, postID string, reaction core.Reaction) error {
	if reaction != core.ReactionLike && reaction != core.ReactionDislike {
		return fmt.Errorf("%w: %q", ErrInvalidReaction, reaction)
	}

	if err := f.API.ReactToPost(ctx, postID, reaction); err != nil {
		f.Logger.Error("failed to react", "post", postID, "reaction", reaction, "error", err)
		return err
	}

	return f.Refresh(ctx)
}

func (f *Feed) Reply(ctx context.Context, postID, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyReply
	}

	if err := f.API.ReplyToPost(ctx, postID, text); err != nil {
		f.Logger.Error("failed to reply", "post", postID, "error", err)
		return err
	}

	return f.Refresh(ctx)
}

// Settle waits for the reply fetches in flight.
func (f *Feed) Settle(ctx context.Context) error {
	return f.jobs.Wait(ctx)
}

func (f *Feed) Filter() core.Filter {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.filter
}

func (f *Feed) Posts() []*core.Post {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.posts)
}

func (f *Feed) Replies(postID string) []*core.Reply {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.replies[postID])
}

func (f *Feed) Entries() []Entry {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return lo.Map(f.posts, func(post *core.Post, _ int) Entry {
		return Entry{Post: post, Replies: slices.Clone(f.replies[post.ID])}
	})
}

// clearCoordinates forgets the resolved place, name included.
func (f *Feed) clearCoordinates() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filter.LocationName = ""
	f.filter.ClearCoordinates()
}

func (f *Feed) applyPosts(ctx context.Context, seq uint64, posts []*core.Post) {
	f.syncMu.Lock()
	defer f.syncMu.Unlock()

	if seq < f.applied {
		f.Logger.Debug("dropping stale post list", "seq", seq, "applied", f.applied)
		return
	}
	f.applied = seq

	ids := lo.Map(posts, func(post *core.Post, _ int) string {
		return post.ID
	})

	f.mu.Lock()
	f.posts = posts
	f.replies = lo.PickByKeys(f.replies, ids)
	f.mu.Unlock()

	f.jobs.Retain(ids...)

	for _, id := range lo.Uniq(ids) {
		f.jobs.Start(ctx, id, func(ctx context.Context) ([]*core.Reply, error) {
			return f.API.FetchReplies(ctx, id)
		}, func(replies []*core.Reply, err error) {
			f.setReplies(id, replies, err)
		})
	}
}

func (f *Feed) setReplies(postID string, replies []*core.Reply, err error) {
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			f.Logger.Error("failed to fetch replies", "post", postID, "error", err)
		}
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if !slices.ContainsFunc(f.posts, func(post *core.Post) bool { return post.ID == postID }) {
		return
	}
	f.replies[postID] = replies
}
