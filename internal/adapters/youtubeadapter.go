package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"songshelf/internal/playlist"
	"songshelf/internal/utils"
)

const youtubePageLimit = 50

// YouTubeAdapter imports YouTube playlists as songs
type YouTubeAdapter struct {
	BaseAdapter
	service     *youtube.Service
	oauth       *oauth2.Config
	redirectURL string
	state       string
	out         io.Writer
}

// NewYouTubeAdapter creates a new YouTubeAdapter from the configured credentials
func NewYouTubeAdapter(opts Options) (*YouTubeAdapter, error) {
	cfg := opts.Config
	if cfg.YouTubeClientID == "" || cfg.YouTubeClientSecret == "" {
		return nil, fmt.Errorf("youtube client ID and secret must be set in YOUTUBE_CLIENT_ID and YOUTUBE_CLIENT_SECRET")
	}

	state, err := utils.GenerateState()
	if err != nil {
		return nil, err
	}

	return &YouTubeAdapter{
		BaseAdapter: NewBaseAdapter("YouTube", opts.Logger),
		oauth: &oauth2.Config{
			ClientID:     cfg.YouTubeClientID,
			ClientSecret: cfg.YouTubeClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{youtube.YoutubeReadonlyScope},
			Endpoint:     google.Endpoint,
		},
		redirectURL: cfg.RedirectURL,
		state:       state,
		out:         opts.out(),
	}, nil
}

// Authenticate handles user authentication with YouTube API
func (a *YouTubeAdapter) Authenticate(ctx context.Context) error {
	promptLogin(a.out, a.log, "YouTube", a.oauth.AuthCodeURL(a.state, oauth2.AccessTypeOffline))

	var service *youtube.Service
	err := awaitCallback(ctx, a.redirectURL, func(r *http.Request) error {
		if st := r.FormValue("state"); st != a.state {
			return fmt.Errorf("state mismatch: %s != %s", st, a.state)
		}
		token, err := a.oauth.Exchange(r.Context(), r.FormValue("code"))
		if err != nil {
			return fmt.Errorf("exchanging code for token: %w", err)
		}
		service, err = youtube.NewService(ctx, option.WithHTTPClient(a.oauth.Client(ctx, token)))
		return err
	})
	if err != nil {
		return fmt.Errorf("adapters.YouTubeAdapter.Authenticate: %w", err)
	}

	a.service = service
	a.SetAuthenticated(true)
	a.log.Info("logged in")
	return nil
}

// ListPlaylists retrieves all playlists for the authenticated user
func (a *YouTubeAdapter) ListPlaylists(ctx context.Context) ([]RemotePlaylist, error) {
	if err := a.CheckAuth(); err != nil {
		return nil, err
	}

	var playlists []RemotePlaylist
	var nextPageToken string
	for {
		call := a.service.Playlists.List([]string{"snippet", "contentDetails"}).
			Mine(true).
			MaxResults(youtubePageLimit).
			Context(ctx)
		if nextPageToken != "" {
			call = call.PageToken(nextPageToken)
		}

		response, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("adapters.YouTubeAdapter.ListPlaylists: %w", err)
		}

		for _, item := range response.Items {
			publishedTime, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
			playlists = append(playlists, RemotePlaylist{
				ID:          item.Id,
				Name:        item.Snippet.Title,
				Description: item.Snippet.Description,
				TrackCount:  int(item.ContentDetails.ItemCount),
				CreatedAt:   publishedTime,
			})
		}

		nextPageToken = response.NextPageToken
		if nextPageToken == "" {
			break
		}
	}
	return playlists, nil
}

// LoadSongs converts every video of the playlist into a song. The playlist
// title becomes the album and the video's own tags become the song's tags.
func (a *YouTubeAdapter) LoadSongs(ctx context.Context, playlistID string) ([]*playlist.Song, error) {
	if err := a.CheckAuth(); err != nil {
		return nil, err
	}

	album, err := a.playlistTitle(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("adapters.YouTubeAdapter.LoadSongs: %w", err)
	}

	videoIDs, err := a.playlistVideoIDs(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("adapters.YouTubeAdapter.LoadSongs: %w", err)
	}

	// playlist items lack tags, so fetch the videos themselves in batches
	songs := make([]*playlist.Song, 0, len(videoIDs))
	for start := 0; start < len(videoIDs); start += youtubePageLimit {
		end := min(start+youtubePageLimit, len(videoIDs))

		response, err := a.service.Videos.List([]string{"snippet"}).
			Id(videoIDs[start:end]...).
			Context(ctx).
			Do()
		if err != nil {
			return nil, fmt.Errorf("adapters.YouTubeAdapter.LoadSongs: %w", err)
		}
		for _, video := range response.Items {
			if s := songFromVideo(video, album); s != nil {
				songs = append(songs, s)
			}
		}
	}

	a.log.Info("songs loaded", "playlist", playlistID, "count", len(songs))
	return songs, nil
}

func (a *YouTubeAdapter) playlistTitle(ctx context.Context, playlistID string) (string, error) {
	response, err := a.service.Playlists.List([]string{"snippet"}).Id(playlistID).Context(ctx).Do()
	if err != nil {
		return "", err
	}
	if len(response.Items) == 0 || response.Items[0].Snippet == nil {
		return "", fmt.Errorf("playlist %s not found", playlistID)
	}
	return response.Items[0].Snippet.Title, nil
}

func (a *YouTubeAdapter) playlistVideoIDs(ctx context.Context, playlistID string) ([]string, error) {
	var ids []string
	var nextPageToken string
	for {
		call := a.service.PlaylistItems.List([]string{"contentDetails"}).
			PlaylistId(playlistID).
			MaxResults(youtubePageLimit).
			Context(ctx)
		if nextPageToken != "" {
			call = call.PageToken(nextPageToken)
		}

		response, err := call.Do()
		if err != nil {
			return nil, err
		}
		for _, item := range response.Items {
			if item.ContentDetails != nil && item.ContentDetails.VideoId != "" {
				ids = append(ids, item.ContentDetails.VideoId)
			}
		}

		nextPageToken = response.NextPageToken
		if nextPageToken == "" {
			break
		}
	}
	return ids, nil
}

// songFromVideo maps a video onto a song: channel as artist, no rating or
// genre, the video's tags plus "youtube".
func songFromVideo(video *youtube.Video, album string) *playlist.Song {
	if video == nil || video.Snippet == nil {
		return nil
	}
	tags := append([]string{"youtube"}, video.Snippet.Tags...)
	return playlist.NewSong(video.Snippet.Title, video.Snippet.ChannelTitle, album, 0, "", tags)
}
