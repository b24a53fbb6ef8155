package organizer

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lzhang-md/drivetidy/internal/junk"
	"github.com/lzhang-md/drivetidy/internal/metadata"
	"github.com/lzhang-md/drivetidy/internal/models"
)

// ──────────────────── Fakes ────────────────────

type renameCall struct{ id, newName string }

type fakeStore struct {
	listings map[string][]models.DirEntry

	renames  []renameCall
	moves    int
	mkdirs   int
	removals [][]string
	nextID   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{listings: map[string][]models.DirEntry{}}
}

func (s *fakeStore) mutations() int {
	return len(s.renames) + s.moves + s.mkdirs + len(s.removals)
}

func (s *fakeStore) ListDir(_ context.Context, folderID string) ([]models.DirEntry, error) {
	return s.listings[folderID], nil
}

func (s *fakeStore) Rename(_ context.Context, id, newName string) error {
	s.renames = append(s.renames, renameCall{id: id, newName: newName})
	return nil
}

func (s *fakeStore) Mkdir(_ context.Context, parentID, name string) (string, error) {
	s.mkdirs++
	s.nextID++
	id := fmt.Sprintf("new-%d", s.nextID)
	s.listings[id] = nil
	return id, nil
}

func (s *fakeStore) Move(_ context.Context, ids []string, toParentID string) error {
	s.moves++
	return nil
}

func (s *fakeStore) Remove(_ context.Context, ids []string) error {
	s.removals = append(s.removals, ids)
	return nil
}

type stubProvider struct {
	movieResults []metadata.Result
	tvResults    []metadata.Result
}

func (s *stubProvider) SearchMovie(context.Context, string, *int) ([]metadata.Result, error) {
	return s.movieResults, nil
}

func (s *stubProvider) SearchTV(context.Context, string) ([]metadata.Result, error) {
	return s.tvResults, nil
}

func (s *stubProvider) MovieDetails(context.Context, int) (*metadata.Details, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *stubProvider) TVDetails(context.Context, int) (*metadata.Details, error) {
	return nil, fmt.Errorf("not implemented")
}

func newOrganizer(st *fakeStore, p metadata.Provider, opts ...Option) *Organizer {
	return New(st, metadata.NewResolver(p), junk.NewClassifier(junk.DefaultRuleset()), opts...)
}

func descriptions(logs []models.ActionLog) []string {
	out := make([]string, len(logs))
	for i, l := range logs {
		out[i] = l.Description
	}
	return out
}

func containsLog(logs []models.ActionLog, substr string) bool {
	for _, l := range logs {
		if strings.Contains(l.Description, substr) {
			return true
		}
	}
	return false
}

// ──────────────────── Series ────────────────────

func TestOrganizeSeriesDryRunEndToEnd(t *testing.T) {
	st := newFakeStore()
	st.listings["root"] = []models.DirEntry{
		{ID: "f1", ParentID: "root", Name: "ep01.mkv"},
		{ID: "f2", ParentID: "root", Name: "ep02.mkv"},
	}
	p := &stubProvider{tvResults: []metadata.Result{
		{ID: 1396, Name: "絕命毒師", FirstAirDate: "2008-01-20"},
	}}
	o := newOrganizer(st, p)

	res, err := o.OrganizeSeries(context.Background(), models.OrganizeRequest{
		FolderID: "root", FolderName: "Breaking Bad", DryRun: true,
	})
	require.NoError(t, err)
	assert.True(t, res.Success)

	logs := descriptions(res.Logs)
	assert.Contains(t, logs, "[DRY] Rename: Breaking Bad -> 絕命毒師 (2008) [TMDB-1396]")
	assert.Contains(t, logs, "[DRY] Create folder: S01")
	assert.Contains(t, logs, "[DRY] Rename: ep01.mkv -> 絕命毒師 - S01E01.mkv")
	assert.Contains(t, logs, "[DRY] Rename: ep02.mkv -> 絕命毒師 - S01E02.mkv")
	assert.True(t, containsLog(res.Logs, "Move: ep01.mkv -> S01/"))

	assert.Zero(t, st.mutations(), "dry-run must not touch the store")
}

func TestOrganizeSeriesSeasonNormalization(t *testing.T) {
	st := newFakeStore()
	st.listings["root"] = []models.DirEntry{
		{ID: "d1", ParentID: "root", Name: "Season 2", IsDir: true},
		{ID: "d2", ParentID: "root", Name: "S03", IsDir: true},
	}
	o := newOrganizer(st, nil)

	res, err := o.OrganizeSeries(context.Background(), models.OrganizeRequest{
		FolderID: "root", FolderName: "My Show",
	})
	require.NoError(t, err)

	// "Season 2" → S02; "S03" is already canonical, so no call and no
	// log for it. The folder itself resolves to its own name (no-op).
	require.Len(t, st.renames, 1)
	assert.Equal(t, renameCall{id: "d1", newName: "S02"}, st.renames[0])
	assert.False(t, containsLog(res.Logs, "S03 -> "), "no spurious rename for canonical folders")
}

func TestOrganizeSeriesReconcilesSeasonFolders(t *testing.T) {
	st := newFakeStore()
	st.listings["root"] = []models.DirEntry{
		{ID: "d1", ParentID: "root", Name: "S01", IsDir: true},
	}
	st.listings["d1"] = []models.DirEntry{
		// Claims season 3 in the name, but the folder owns the season.
		{ID: "f1", ParentID: "d1", Name: "whatever.S03E07.1080p.mkv"},
		{ID: "f2", ParentID: "d1", Name: "notes.nfo"},
	}
	p := &stubProvider{tvResults: []metadata.Result{
		{ID: 42, Name: "The Show", FirstAirDate: "2019-05-01"},
	}}
	o := newOrganizer(st, p)

	_, err := o.OrganizeSeries(context.Background(), models.OrganizeRequest{
		FolderID: "root", FolderName: "The Show (2019) [TMDB-42]",
	})
	require.NoError(t, err)

	var got []renameCall
	for _, rc := range st.renames {
		if rc.id == "f1" {
			got = append(got, rc)
		}
	}
	require.Len(t, got, 1)
	assert.Equal(t, "The Show - S01E07 - 1080p.mkv", got[0].newName)
}

func TestOrganizeSeriesSkipsUnrecognizedFiles(t *testing.T) {
	st := newFakeStore()
	st.listings["root"] = []models.DirEntry{
		{ID: "f1", ParentID: "root", Name: "behind the scenes.mkv"},
	}
	o := newOrganizer(st, nil)

	res, err := o.OrganizeSeries(context.Background(), models.OrganizeRequest{
		FolderID: "root", FolderName: "Some Show",
	})
	require.NoError(t, err)
	assert.True(t, containsLog(res.Logs, "Skip (no episode number): behind the scenes.mkv"))
	assert.Zero(t, st.mutations())
}

// ──────────────────── Movies ────────────────────

func TestOrganizeMovieSingle(t *testing.T) {
	st := newFakeStore()
	st.listings["m1"] = []models.DirEntry{
		{ID: "v1", ParentID: "m1", Name: "Inception.2010.1080p.BluRay.x264.mkv"},
		{ID: "j1", ParentID: "m1", Name: "RARBG-downloaded-from.txt"},
		{ID: "j2", ParentID: "m1", Name: "Sample", IsDir: true},
		{ID: "n1", ParentID: "m1", Name: "cover.jpg"},
	}
	p := &stubProvider{movieResults: []metadata.Result{
		{ID: 27205, Title: "Inception", ReleaseDate: "2010-07-16"},
	}}
	o := newOrganizer(st, p)

	res, err := o.OrganizeMovie(context.Background(), models.OrganizeRequest{
		FolderID: "m1", FolderName: "Inception.2010.1080p",
	})
	require.NoError(t, err)
	assert.True(t, res.Success)

	require.Len(t, st.renames, 2)
	assert.Equal(t, renameCall{id: "m1", newName: "Inception (2010) [TMDB-27205]"}, st.renames[0])
	assert.Equal(t, renameCall{id: "v1", newName: "Inception (2010) - 1080p.mkv"}, st.renames[1])

	require.Len(t, st.removals, 1)
	assert.ElementsMatch(t, []string{"j1", "j2"}, st.removals[0])

	// One clean log per junk item, and the non-video file is untouched.
	assert.True(t, containsLog(res.Logs, "Remove junk: RARBG-downloaded-from.txt"))
	assert.True(t, containsLog(res.Logs, "Remove junk: Sample"))
	assert.False(t, containsLog(res.Logs, "cover.jpg"))
}

func TestOrganizeMovieUnresolvedSkips(t *testing.T) {
	st := newFakeStore()
	o := newOrganizer(st, nil)

	res, err := o.OrganizeMovie(context.Background(), models.OrganizeRequest{
		FolderID: "m1", FolderName: "2160p.HDR",
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.True(t, containsLog(res.Logs, "Skip (unresolved)"))
	assert.Zero(t, st.mutations())
}

func TestOrganizeMovieCollection(t *testing.T) {
	st := newFakeStore()
	st.listings["c1"] = []models.DirEntry{
		{ID: "v1", ParentID: "c1", Name: "Dune.2021.2160p.mkv"},
		{ID: "d1", ParentID: "c1", Name: "Old Versions", IsDir: true},
	}
	p := &stubProvider{movieResults: []metadata.Result{
		{ID: 438631, Title: "Dune", ReleaseDate: "2021-09-15"},
	}}
	o := newOrganizer(st, p)

	res, err := o.OrganizeMovie(context.Background(), models.OrganizeRequest{
		FolderID: "c1", FolderName: "科幻电影合集",
	})
	require.NoError(t, err)

	// Collection folder gets the bare cleaned title, no year/id suffix.
	require.NotEmpty(t, st.renames)
	assert.Equal(t, renameCall{id: "c1", newName: "科幻"}, st.renames[0])

	assert.Equal(t, 1, st.mkdirs, "one subfolder per resolved movie")
	assert.Equal(t, 1, st.moves)
	assert.Equal(t, renameCall{id: "v1", newName: "Dune (2021) - 4K.mkv"}, st.renames[len(st.renames)-1])

	assert.True(t, containsLog(res.Logs, "Subfolder needs separate processing: Old Versions"))
}

// ──────────────────── Clean ────────────────────

func TestCleanRemovesJunkRecursively(t *testing.T) {
	st := newFakeStore()
	st.listings["root"] = []models.DirEntry{
		{ID: "f1", ParentID: "root", Name: "www.ads-site.mkv"},
		{ID: "d1", ParentID: "root", Name: "Disc 1", IsDir: true},
	}
	st.listings["d1"] = []models.DirEntry{
		{ID: "f2", ParentID: "d1", Name: "声明-免费分享.txt"},
	}
	o := newOrganizer(st, nil)

	res, err := o.Clean(context.Background(), models.OrganizeRequest{
		FolderID: "root", FolderName: "Downloads",
	})
	require.NoError(t, err)

	require.Len(t, st.removals, 2)
	assert.Equal(t, []string{"f1"}, st.removals[0])
	assert.Equal(t, []string{"f2"}, st.removals[1])
	assert.True(t, containsLog(res.Logs, "Remove junk: www.ads-site.mkv"))
}

func TestCleanDepthCap(t *testing.T) {
	st := newFakeStore()
	st.listings["root"] = []models.DirEntry{{ID: "d1", ParentID: "root", Name: "level1", IsDir: true}}
	st.listings["d1"] = []models.DirEntry{{ID: "d2", ParentID: "d1", Name: "level2", IsDir: true}}
	st.listings["d2"] = []models.DirEntry{{ID: "f1", ParentID: "d2", Name: "deep-junk.txt"}}
	o := newOrganizer(st, nil, WithCleanLimits(1, 100))

	res, err := o.Clean(context.Background(), models.OrganizeRequest{
		FolderID: "root", FolderName: "Downloads",
	})
	require.NoError(t, err)

	assert.Empty(t, st.removals, "junk below the depth cap stays put")
	assert.True(t, containsLog(res.Logs, "Depth cap reached"))
}

func TestCleanDryRun(t *testing.T) {
	st := newFakeStore()
	st.listings["root"] = []models.DirEntry{
		{ID: "f1", ParentID: "root", Name: "junk.pdf"},
	}
	o := newOrganizer(st, nil)

	res, err := o.Clean(context.Background(), models.OrganizeRequest{
		FolderID: "root", FolderName: "Downloads", DryRun: true,
	})
	require.NoError(t, err)
	assert.True(t, containsLog(res.Logs, "[DRY] Remove junk: junk.pdf"))
	assert.Zero(t, st.mutations())
}
