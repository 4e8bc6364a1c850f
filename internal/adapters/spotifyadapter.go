package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"

	"songshelf/internal/playlist"
	"songshelf/internal/utils"
)

const spotifyPageLimit = 50

// SpotifyAdapter imports Spotify playlists as songs
type SpotifyAdapter struct {
	BaseAdapter // Embed the BaseAdapter
	client      *spotify.Client
	auth        *spotifyauth.Authenticator
	redirectURL string
	state       string
	out         io.Writer
}

// NewSpotifyAdapter creates a new SpotifyAdapter from the configured credentials
func NewSpotifyAdapter(opts Options) (*SpotifyAdapter, error) {
	cfg := opts.Config
	if cfg.SpotifyID == "" || cfg.SpotifySecret == "" {
		return nil, fmt.Errorf("spotify client ID and secret must be set in SPOTIFY_ID and SPOTIFY_SECRET")
	}

	state, err := utils.GenerateState()
	if err != nil {
		return nil, err
	}

	return &SpotifyAdapter{
		BaseAdapter: NewBaseAdapter("Spotify", opts.Logger),
		auth: spotifyauth.New(
			spotifyauth.WithRedirectURL(cfg.RedirectURL),
			spotifyauth.WithScopes(spotifyauth.ScopeUserReadPrivate, spotifyauth.ScopePlaylistReadPrivate),
			spotifyauth.WithClientID(cfg.SpotifyID),
			spotifyauth.WithClientSecret(cfg.SpotifySecret),
		),
		redirectURL: cfg.RedirectURL,
		state:       state,
		out:         opts.out(),
	}, nil
}

// Authenticate runs the browser login and waits for the redirect
func (a *SpotifyAdapter) Authenticate(ctx context.Context) error {
	promptLogin(a.out, a.log, "Spotify", a.auth.AuthURL(a.state))

	var client *spotify.Client
	err := awaitCallback(ctx, a.redirectURL, func(r *http.Request) error {
		// Token verifies the state parameter
		tok, err := a.auth.Token(r.Context(), a.state, r)
		if err != nil {
			return err
		}
		client = spotify.New(a.auth.Client(ctx, tok))
		return nil
	})
	if err != nil {
		return fmt.Errorf("adapters.SpotifyAdapter.Authenticate: %w", err)
	}

	// Verify authentication by getting user info
	user, err := client.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("adapters.SpotifyAdapter.Authenticate: %w", err)
	}

	a.client = client
	a.SetAuthenticated(true)
	a.log.Info("logged in", "user", user.ID)
	return nil
}

// ListPlaylists retrieves all playlists for the authenticated user
func (a *SpotifyAdapter) ListPlaylists(ctx context.Context) ([]RemotePlaylist, error) {
	if err := a.CheckAuth(); err != nil {
		return nil, err
	}

	var all []RemotePlaylist
	offset := 0
	for {
		page, err := a.client.CurrentUsersPlaylists(ctx, spotify.Limit(spotifyPageLimit), spotify.Offset(offset))
		if err != nil {
			return nil, fmt.Errorf("adapters.SpotifyAdapter.ListPlaylists: %w", err)
		}

		for _, p := range page.Playlists {
			all = append(all, RemotePlaylist{
				ID:          string(p.ID),
				Name:        p.Name,
				Description: p.Description,
				TrackCount:  int(p.Tracks.Total),
				CreatedAt:   time.Now(), // Spotify doesn't provide creation date easily
			})
		}

		if len(page.Playlists) < spotifyPageLimit {
			break
		}
		offset += spotifyPageLimit
	}
	return all, nil
}

// LoadSongs converts every track of the playlist into a song
func (a *SpotifyAdapter) LoadSongs(ctx context.Context, playlistID string) ([]*playlist.Song, error) {
	if err := a.CheckAuth(); err != nil {
		return nil, err
	}

	var songs []*playlist.Song
	offset := 0
	for {
		page, err := a.client.GetPlaylistItems(
			ctx,
			spotify.ID(playlistID),
			spotify.Limit(spotifyPageLimit),
			spotify.Offset(offset),
		)
		if err != nil {
			return nil, fmt.Errorf("adapters.SpotifyAdapter.LoadSongs: %w", err)
		}

		for _, item := range page.Items {
			// episodes have no track
			if s := songFromSpotifyTrack(item.Track.Track); s != nil {
				songs = append(songs, s)
			}
		}

		if len(page.Items) < spotifyPageLimit {
			break
		}
		offset += spotifyPageLimit
	}

	a.log.Info("songs loaded", "playlist", playlistID, "count", len(songs))
	return songs, nil
}

// songFromSpotifyTrack maps popularity (0-100) onto the 0-5 rating scale.
// Spotify tracks carry no genre. Every song is tagged "spotify", explicit
// tracks also get "explicit".
func songFromSpotifyTrack(track *spotify.FullTrack) *playlist.Song {
	if track == nil {
		return nil
	}

	artistNames := make([]string, 0, len(track.Artists))
	for _, artist := range track.Artists {
		artistNames = append(artistNames, artist.Name)
	}

	tags := []string{"spotify"}
	if track.Explicit {
		tags = append(tags, "explicit")
	}

	return playlist.NewSong(
		track.Name,
		strings.Join(artistNames, ", "),
		track.Album.Name,
		float64(track.Popularity)/20,
		"",
		tags,
	)
}
