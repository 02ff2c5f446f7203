package lccs

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaiso/lccs/internal/mockws"
	"github.com/shaiso/lccs/pkg/domain"
	"github.com/shaiso/lccs/pkg/schema"
	"github.com/shaiso/lccs/pkg/transport"
)

// newMockService поднимает mockws с демонстрационными данными.
func newMockService(t *testing.T, opts ...Option) (*Service, *mockws.Handler, afero.Fs) {
	t.Helper()

	store := mockws.NewStore()
	require.NoError(t, mockws.Seed(store))
	h := mockws.NewHandler(mockws.Config{Store: store})

	srv := httptest.NewServer(mockws.NewServeMux(h))
	t.Cleanup(srv.Close)

	fs := afero.NewMemMapFs()
	svc, err := New(srv.URL+"/", append([]Option{WithFs(fs)}, opts...)...)
	require.NoError(t, err)
	return svc, h, fs
}

// newStubService отвечает body на любой запрос и считает запросы.
func newStubService(t *testing.T, body string, opts ...Option) (*Service, *atomic.Int32) {
	t.Helper()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	svc, err := New(srv.URL, opts...)
	require.NoError(t, err)
	return svc, &calls
}

func TestListThenGetUsesRegistry(t *testing.T) {
	svc, calls := newStubService(t, `{"classification_systems":[{"id":1,"name":"TerraClass_AMZ","version":"1.0","authority_name":"INPE","description":"...","links":[]}]}`)
	ctx := context.Background()

	names, err := svc.ClassificationSystems(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"TerraClass_AMZ"}, names)

	cs, err := svc.ClassificationSystem(ctx, "TerraClass_AMZ")
	require.NoError(t, err)
	assert.Equal(t, "TerraClass_AMZ", cs.Name())
	assert.Equal(t, 1, cs.ID())
	assert.Equal(t, "1.0", cs.Version())
	assert.Equal(t, "INPE", cs.AuthorityName())
	assert.Equal(t, "...", cs.Description())

	byID, err := svc.ClassificationSystem(ctx, "1")
	require.NoError(t, err)
	assert.Same(t, cs, byID)

	names, err = svc.ClassificationSystems(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"TerraClass_AMZ"}, names)

	assert.EqualValues(t, 1, calls.Load())
}

func TestClassificationSystemCached(t *testing.T) {
	svc, h, _ := newMockService(t)
	ctx := context.Background()

	first, err := svc.ClassificationSystem(ctx, "PRODES")
	require.NoError(t, err)
	second, err := svc.ClassificationSystem(ctx, "PRODES")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, h.Hits().Count(http.MethodGet, "/classification_system/PRODES"))
}

func TestClassificationSystemErrors(t *testing.T) {
	testCases := map[string]struct {
		body    string
		wantErr error
	}{
		"missing required key": {
			body:    `{"id":1,"name":"X","version":"1","description":"d"}`,
			wantErr: domain.ErrMissingField,
		},
		"not an object": {
			body:    `["X"]`,
			wantErr: domain.ErrInvalidPayload,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			svc, _ := newStubService(t, tc.body)

			_, err := svc.ClassificationSystem(context.Background(), "X")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrNotFound)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestClassificationSystemNotFound(t *testing.T) {
	svc, _, _ := newMockService(t)

	_, err := svc.ClassificationSystem(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, transport.ErrNotFound)

	var lerr *Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, "missing", lerr.Resource)
}

func TestClasses(t *testing.T) {
	svc, h, _ := newMockService(t)
	ctx := context.Background()

	classes, err := svc.Classes(ctx, "TerraClass_AMZ")
	require.NoError(t, err)
	assert.Equal(t, []string{"Vegetacao Natural", "Floresta Primaria", "Pastagem", "Agricultura Anual"}, classes.Names())

	forest, ok := classes.ByName("Floresta Primaria")
	require.True(t, ok)
	parent, ok := forest.Parent()
	require.True(t, ok)
	assert.Equal(t, "Parent class", parent.Title())

	byID, err := svc.Class(ctx, "TerraClass_AMZ", forest.ID())
	require.NoError(t, err)
	assert.Equal(t, "Floresta Primaria", byID.Name())

	byName, err := svc.Class(ctx, "TerraClass_AMZ", "Pastagem")
	require.NoError(t, err)
	assert.Equal(t, "2", byName.Code())

	_, err = svc.Class(ctx, "TerraClass_AMZ", "Deserto")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, domain.ErrClassNotFound)

	filtered, err := svc.ClassesFiltered(ctx, "TerraClass_AMZ", map[string][]string{"name": {"Pastagem"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Pastagem"}, filtered.Names())

	assert.Equal(t, 1, h.Hits().Count(http.MethodGet, "/classification_system/TerraClass_AMZ"))
}

func TestClassesWithoutLink(t *testing.T) {
	svc, _ := newStubService(t, `{"id":7,"name":"Bare","version":1,"authority_name":"X","description":"no classes"}`)

	classes, err := svc.Classes(context.Background(), "Bare")
	require.NoError(t, err)
	assert.Zero(t, classes.Len())
}

func TestMappingsTagsIdentifiers(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"mappings":[{"source_class":"X","target_class":"Y"}]}`))
	}))
	defer srv.Close()

	svc, err := New(srv.URL)
	require.NoError(t, err)

	group, err := svc.Mappings(context.Background(), "A", "B")
	require.NoError(t, err)

	assert.Equal(t, "/mappings/A/B", path)
	assert.Equal(t, "A", group.SourceID())
	assert.Equal(t, "B", group.TargetID())
	require.Len(t, group.Mappings(), 1)
	assert.Equal(t, "X", group.Mappings()[0].SourceClass())
	assert.Equal(t, "Y", group.Mappings()[0].TargetClass())
	assert.JSONEq(t, `{"source_class":"X","target_class":"Y"}`, string(group.Mappings()[0].Raw()))
}

func TestAvailableMappings(t *testing.T) {
	svc, _, _ := newMockService(t)
	ctx := context.Background()

	targets, err := svc.AvailableMappings(ctx, "TerraClass_AMZ")
	require.NoError(t, err)
	assert.Equal(t, []string{"PRODES"}, targets)

	targets, err = svc.AvailableMappings(ctx, "PRODES")
	require.NoError(t, err)
	assert.NotNil(t, targets)
	assert.Empty(t, targets)
}

func TestAvailableMappingsWithoutLinks(t *testing.T) {
	svc, _ := newStubService(t, `{"message":"no links here"}`)

	targets, err := svc.AvailableMappings(context.Background(), "A")
	require.NoError(t, err)
	assert.Empty(t, targets)
}

func TestStyleFile(t *testing.T) {
	svc, _, fs := newMockService(t)
	ctx := context.Background()
	require.NoError(t, fs.MkdirAll("styles", 0o755))

	testCases := map[string]struct {
		path string
		want string
	}{
		"name from Content-Disposition": {path: "", want: "TerraClass_AMZ_QGIS.qml"},
		"existing directory":            {path: "styles", want: "styles/TerraClass_AMZ_QGIS.qml"},
		"trailing separator":            {path: "new/", want: "new/TerraClass_AMZ_QGIS.qml"},
		"explicit file":                 {path: "amz.qml", want: "amz.qml"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			written, err := svc.StyleFile(ctx, "TerraClass_AMZ", "QGIS", tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.want, written)

			data, err := afero.ReadFile(fs, written)
			require.NoError(t, err)
			assert.Contains(t, string(data), `<!DOCTYPE qgis>`)
		})
	}

	_, err := svc.StyleFile(ctx, "TerraClass_AMZ", "SLD", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStyleFileTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", transport.ContentOctetStream)
		w.Header().Set("Content-Disposition", "attachment; filename=big.qml")
		w.Write([]byte("<qgis>0123456789</qgis>"))
	}))
	defer srv.Close()

	fs := afero.NewMemMapFs()
	svc, err := New(srv.URL, WithFs(fs), WithTransportOptions(transport.WithMaxResponseSize(8)))
	require.NoError(t, err)

	_, err = svc.StyleFile(context.Background(), "A", "QGIS", "big.qml")
	require.Error(t, err)
	assert.ErrorIs(t, err, transport.ErrResponseTooLarge)

	exists, err := afero.Exists(fs, "big.qml")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStylesAndFormats(t *testing.T) {
	svc, _, _ := newMockService(t)
	ctx := context.Background()

	formats, err := svc.StyleFormats(ctx)
	require.NoError(t, err)
	require.Len(t, formats, 2)
	assert.Equal(t, "QGIS", formats[0].Name())
	assert.Equal(t, "SLD", formats[1].Name())

	styles, err := svc.Styles(ctx, "TerraClass_AMZ")
	require.NoError(t, err)
	assert.Equal(t, []string{"QGIS"}, styles)

	styles, err = svc.Styles(ctx, "PRODES")
	require.NoError(t, err)
	assert.Empty(t, styles)
}

func TestStyleFormatsArray(t *testing.T) {
	svc, _ := newStubService(t, `[{"id":1,"name":"QGIS"},{"id":2,"name":"SLD"}]`)

	formats, err := svc.StyleFormats(context.Background())
	require.NoError(t, err)
	require.Len(t, formats, 2)
	assert.Equal(t, "1", formats[0].ID())
	assert.Equal(t, "SLD", formats[1].Name())
}

func TestLifecycle(t *testing.T) {
	svc, h, fs := newMockService(t)
	ctx := context.Background()
	require := require.New(t)

	require.NoError(afero.WriteFile(fs, "classes.json", []byte(`[{"name":"Forest","code":"F"},{"name":"Water","code":"W"}]`), 0o644))
	require.NoError(afero.WriteFile(fs, "more.json", []byte(`[{"name":"Urban","code":"U"}]`), 0o644))
	require.NoError(afero.WriteFile(fs, "mappings.json", []byte(`[{"source_class":"Forest","target_class":"Floresta"}]`), 0o644))
	require.NoError(afero.WriteFile(fs, "style.sld", []byte(`<StyledLayerDescriptor/>`), 0o644))

	names, err := svc.ClassificationSystems(ctx)
	require.NoError(err)
	assert.Equal(t, []string{"TerraClass_AMZ", "PRODES"}, names)

	cs, err := svc.AddClassificationSystem(ctx, domain.NewClassificationSystem{
		Name:          "Novo",
		AuthorityName: "Test",
		Description:   "Test system",
		Version:       "0.1",
		ClassesPath:   "classes.json",
	})
	require.NoError(err)
	assert.Equal(t, "Novo", cs.Name())

	names, err = svc.ClassificationSystems(ctx)
	require.NoError(err)
	assert.Equal(t, []string{"TerraClass_AMZ", "PRODES", "Novo"}, names)

	msg, err := svc.AddClasses(ctx, "Novo", "more.json")
	require.NoError(err)
	assert.Equal(t, "1 classes added", msg)

	classes, err := svc.Classes(ctx, "Novo")
	require.NoError(err)
	assert.Equal(t, []string{"Forest", "Water", "Urban"}, classes.Names())

	require.NoError(svc.DeleteClass(ctx, "Novo", "Water"))
	classes, err = svc.Classes(ctx, "Novo")
	require.NoError(err)
	assert.Equal(t, []string{"Forest", "Urban"}, classes.Names())

	group, err := svc.AddMapping(ctx, "Novo", "PRODES", "mappings.json")
	require.NoError(err)
	assert.Equal(t, "Novo", group.SourceID())
	require.Len(group.Mappings(), 1)
	assert.Equal(t, 1, h.Hits().Count(http.MethodGet, "/mappings/Novo/PRODES"))

	format, err := svc.AddStyleFormat(ctx, "GeoStyler")
	require.NoError(err)
	assert.Equal(t, "GeoStyler", format.Name())

	_, err = svc.AddStyle(ctx, domain.NewStyle{System: "Novo", Format: "GeoStyler", Path: "style.sld"})
	require.NoError(err)

	style, err := svc.DownloadStyle(ctx, "Novo", "GeoStyler")
	require.NoError(err)
	assert.Equal(t, "style_Novo_GeoStyler.sld", style.Name())
	assert.Equal(t, "<StyledLayerDescriptor/>", string(style.Content()))

	require.NoError(svc.DeleteStyle(ctx, "Novo", "GeoStyler"))
	require.NoError(svc.DeleteStyleFormat(ctx, "GeoStyler"))
	require.NoError(svc.DeleteMapping(ctx, "Novo", "PRODES"))
	require.NoError(svc.DeleteClassificationSystem(ctx, "Novo"))

	names, err = svc.ClassificationSystems(ctx)
	require.NoError(err)
	assert.Equal(t, []string{"TerraClass_AMZ", "PRODES"}, names)

	_, err = svc.ClassificationSystem(ctx, "Novo")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddMappingUsesResponseBody(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"mappings":[{"source_class":1,"target_class":2,"degree_of_similarity":0.5}]}`))
	}))
	defer srv.Close()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "m.json", []byte(`[]`), 0o644))

	svc, err := New(srv.URL, WithFs(fs))
	require.NoError(t, err)

	group, err := svc.AddMapping(context.Background(), "A", "B", "m.json")
	require.NoError(t, err)
	require.Len(t, group.Mappings(), 1)
	assert.Equal(t, "1", group.Mappings()[0].SourceClass())
	degree, ok := group.Mappings()[0].DegreeOfSimilarity()
	assert.True(t, ok)
	assert.Equal(t, 0.5, degree)
	assert.EqualValues(t, 1, calls.Load())
}

func TestDeleteMissing(t *testing.T) {
	svc, _, _ := newMockService(t)
	ctx := context.Background()

	testCases := map[string]func() error{
		"classification system": func() error { return svc.DeleteClassificationSystem(ctx, "missing") },
		"mapping":               func() error { return svc.DeleteMapping(ctx, "PRODES", "TerraClass_AMZ") },
		"style":                 func() error { return svc.DeleteStyle(ctx, "PRODES", "QGIS") },
		"style format":          func() error { return svc.DeleteStyleFormat(ctx, "missing") },
		"class":                 func() error { return svc.DeleteClass(ctx, "PRODES", "missing") },
	}

	for name, del := range testCases {
		t.Run(name, func(t *testing.T) {
			err := del()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDeleteFailed)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestInvalidInputSkipsRequest(t *testing.T) {
	svc, h, fs := newMockService(t)
	ctx := context.Background()
	require.NoError(t, afero.WriteFile(fs, "bad.json", []byte(`not json`), 0o644))

	_, err := svc.AddClassificationSystem(ctx, domain.NewClassificationSystem{Name: "X"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = svc.AddMapping(ctx, "PRODES", "TerraClass_AMZ", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AddClasses(ctx, "PRODES", "bad.json")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AddStyleFormat(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Zero(t, h.Hits().Total())
}

func TestInsertRejected(t *testing.T) {
	svc, _, _ := newMockService(t)

	_, err := svc.AddStyleFormat(context.Background(), "QGIS")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsertFailed)
	assert.ErrorIs(t, err, transport.ErrResponse)

	var rerr *transport.ResponseError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, http.StatusConflict, rerr.StatusCode)
	assert.Contains(t, rerr.Message, "already exists")
}

func TestAccessToken(t *testing.T) {
	store := mockws.NewStore()
	require.NoError(t, mockws.Seed(store))
	srv := httptest.NewServer(mockws.NewServeMux(mockws.NewHandler(mockws.Config{
		Store:       store,
		AccessToken: "secret",
	})))
	defer srv.Close()
	ctx := context.Background()

	anonymous, err := New(srv.URL)
	require.NoError(t, err)
	_, err = anonymous.ClassificationSystems(ctx)
	assert.ErrorIs(t, err, transport.ErrResponse)

	authorized, err := New(srv.URL, WithAccessToken("secret"))
	require.NoError(t, err)
	names, err := authorized.ClassificationSystems(ctx)
	require.NoError(t, err)
	assert.Len(t, names, 2)
}

func TestSchemaValidation(t *testing.T) {
	validator, err := schema.NewValidator()
	require.NoError(t, err)

	body := `{"id":1,"name":"","version":"1","authority_name":"X","description":"d"}`

	plain, _ := newStubService(t, body)
	_, err = plain.ClassificationSystem(context.Background(), "1")
	assert.NoError(t, err)

	strict, _ := newStubService(t, body, WithValidation(validator))
	_, err = strict.ClassificationSystem(context.Background(), "1")
	assert.ErrorIs(t, err, schema.ErrInvalid)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceString(t *testing.T) {
	svc, err := New("http://localhost:5000/")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", svc.URL())
	assert.Equal(t, "<LCCS [http://localhost:5000]>", svc.String())
}

func TestErrorMessage(t *testing.T) {
	err := deleteFailed("delete style", "A/QGIS", errors.New("boom"))
	assert.Equal(t, "delete style A/QGIS: could not delete: boom", err.Error())
}
