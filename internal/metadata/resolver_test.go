package metadata

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider returns canned answers and records calls.
type stubProvider struct {
	movieResults []Result
	tvResults    []Result
	movieDetail  *Details
	tvDetail     *Details
	err          error

	searchMovieCalls int
	searchTVCalls    int
	detailCalls      int
}

func (s *stubProvider) SearchMovie(_ context.Context, _ string, _ *int) ([]Result, error) {
	s.searchMovieCalls++
	return s.movieResults, s.err
}

func (s *stubProvider) SearchTV(_ context.Context, _ string) ([]Result, error) {
	s.searchTVCalls++
	return s.tvResults, s.err
}

func (s *stubProvider) MovieDetails(_ context.Context, _ int) (*Details, error) {
	s.detailCalls++
	return s.movieDetail, s.err
}

func (s *stubProvider) TVDetails(_ context.Context, _ int) (*Details, error) {
	s.detailCalls++
	return s.tvDetail, s.err
}

func TestExplicitID(t *testing.T) {
	tests := []struct {
		name string
		id   int
		ok   bool
	}{
		{"Inception {TMDB-27205}", 27205, true},
		{"Inception [tmdb-27205]", 27205, true},
		{"前缀 {tMdB-12345} 后缀", 12345, true},
		{"Inception (2010)", 0, false},
		{"TMDB-555 without brackets", 0, false},
	}
	for _, tt := range tests {
		id, _, ok := ExplicitID(tt.name)
		assert.Equal(t, tt.ok, ok, "ok for %q", tt.name)
		assert.Equal(t, tt.id, id, "id for %q", tt.name)
	}
}

func TestResolveMovieExplicitIDShortCircuitsSearch(t *testing.T) {
	p := &stubProvider{movieDetail: &Details{ID: 27205, Title: "Inception", ReleaseDate: "2010-07-16"}}
	r := NewResolver(p)

	meta, err := r.ResolveMovie(context.Background(), "盗梦空间 {TMDB-27205} 1080p")
	require.NoError(t, err)
	assert.Equal(t, 27205, meta.TMDBID)
	assert.Equal(t, "Inception", meta.Title)
	require.NotNil(t, meta.Year)
	assert.Equal(t, 2010, *meta.Year)
	assert.Zero(t, p.searchMovieCalls, "explicit id must skip search")
}

func TestResolveMovieExplicitIDDetailsFailure(t *testing.T) {
	p := &stubProvider{err: errors.New("rate limited")}
	r := NewResolver(p)

	meta, err := r.ResolveMovie(context.Background(), "盗梦空间.{TMDB-27205}.2010.1080p")
	require.NoError(t, err)
	assert.Equal(t, 27205, meta.TMDBID)
	assert.Equal(t, "盗梦空间", meta.Title, "falls back to locally cleaned name")
}

func TestResolveMovieAdoptsFirstResult(t *testing.T) {
	p := &stubProvider{movieResults: []Result{
		{ID: 603, Title: "The Matrix", ReleaseDate: "1999-03-30"},
		{ID: 999, Title: "Wrong Movie", ReleaseDate: "2005-01-01"},
	}}
	r := NewResolver(p)

	meta, err := r.ResolveMovie(context.Background(), "The.Matrix.1999.1080p.BluRay")
	require.NoError(t, err)
	assert.Equal(t, 603, meta.TMDBID)
	assert.Equal(t, "The Matrix", meta.Title)
	require.NotNil(t, meta.Year)
	assert.Equal(t, 1999, *meta.Year)
}

func TestResolveMovieSearchFailureKeepsLocalGuess(t *testing.T) {
	p := &stubProvider{err: errors.New("network down")}
	r := NewResolver(p)

	meta, err := r.ResolveMovie(context.Background(), "Inception.2010.1080p")
	require.NoError(t, err)
	assert.Equal(t, "Inception", meta.Title)
	assert.Zero(t, meta.TMDBID)
	require.NotNil(t, meta.Year)
	assert.Equal(t, 2010, *meta.Year)
}

func TestResolveMovieUnresolved(t *testing.T) {
	r := NewResolver(nil)
	_, err := r.ResolveMovie(context.Background(), "1080p.x265")
	assert.ErrorIs(t, err, ErrUnresolved)
}

func TestResolveSeriesWithoutProvider(t *testing.T) {
	r := NewResolver(nil)

	meta := r.ResolveSeries(context.Background(), "风骚律师 第3季 [1080P]")
	assert.Equal(t, "风骚律师", meta.Name)
	assert.Nil(t, meta.Year)
	assert.Zero(t, meta.TMDBID)
}

func TestResolveSeriesAdoptsFirstResult(t *testing.T) {
	p := &stubProvider{tvResults: []Result{
		{ID: 1396, Name: "絕命毒師", FirstAirDate: "2008-01-20"},
	}}
	r := NewResolver(p)

	meta := r.ResolveSeries(context.Background(), "Breaking Bad")
	assert.Equal(t, 1396, meta.TMDBID)
	assert.Equal(t, "絕命毒師", meta.Name)
	require.NotNil(t, meta.Year)
	assert.Equal(t, 2008, *meta.Year)
}

func TestResolveSeriesExplicitID(t *testing.T) {
	p := &stubProvider{tvDetail: &Details{ID: 1396, Name: "Breaking Bad", FirstAirDate: "2008-01-20"}}
	r := NewResolver(p)

	meta := r.ResolveSeries(context.Background(), "绝命毒师 [tmdb-1396] 第1季")
	assert.Equal(t, 1396, meta.TMDBID)
	assert.Equal(t, "Breaking Bad", meta.Name)
	assert.Zero(t, p.searchTVCalls)
}
