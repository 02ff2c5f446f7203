package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/shaiso/lccs/internal/mockws"
)

type testEnv struct {
	url     string
	handler *mockws.Handler
	fs      afero.Fs
}

func newTestEnv(t *testing.T, cfg mockws.Config) *testEnv {
	t.Helper()

	if cfg.Store == nil {
		cfg.Store = mockws.NewStore()
		require.NoError(t, mockws.Seed(cfg.Store))
	}
	h := mockws.NewHandler(cfg)

	srv := httptest.NewServer(mockws.NewServeMux(h))
	t.Cleanup(srv.Close)

	return &testEnv{url: srv.URL, handler: h, fs: afero.NewMemMapFs()}
}

// run выполняет команду и возвращает stdout и stderr.
func (e *testEnv) run(args ...string) (string, string, error) {
	cmd := NewRootCmd("test", e.fs)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--url", e.url}, args...))

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestClassificationSystems(t *testing.T) {
	env := newTestEnv(t, mockws.Config{})

	out, _, err := env.run("classification-systems")
	require.NoError(t, err)
	assert.Equal(t, "TerraClass_AMZ\nPRODES\n", out)
}

func TestClassificationSystemsVerbose(t *testing.T) {
	env := newTestEnv(t, mockws.Config{})

	out, _, err := env.run("classification-systems", "-v")
	require.NoError(t, err)

	assert.Equal(t, "Server: "+env.url+"\n"+
		"\tRetrieving the list of available classification systems ... \n"+
		"\t\t- TerraClass_AMZ\n"+
		"\t\t- PRODES\n"+
		"\tFinished!\n", out)
}

func TestClassificationSystemDescription(t *testing.T) {
	env := newTestEnv(t, mockws.Config{})

	out, _, err := env.run("classification-system-description", "--system", "TerraClass_AMZ")
	require.NoError(t, err)

	assert.Contains(t, out, "\t- name: TerraClass_AMZ\n")
	assert.Contains(t, out, "\t- authority_name: INPE\n")
	assert.Contains(t, out, "\t- version: 1.0\n")
}

func TestOutputFormats(t *testing.T) {
	env := newTestEnv(t, mockws.Config{})

	out, _, err := env.run("--output", "json", "classification-systems")
	require.NoError(t, err)
	var names []string
	require.NoError(t, json.Unmarshal([]byte(out), &names))
	assert.Equal(t, []string{"TerraClass_AMZ", "PRODES"}, names)

	out, _, err = env.run("--output", "yaml", "classification-system-description", "--system", "PRODES")
	require.NoError(t, err)
	var system map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &system))
	assert.Equal(t, "PRODES", system["name"])
	assert.Equal(t, "2.0", system["version"])

	out, _, err = env.run("--output", "html", "classification-systems")
	require.NoError(t, err)
	assert.Contains(t, out, "<p>LCCS-WS</p>")
	assert.Contains(t, out, "<li>PRODES</li>")

	out, _, err = env.run("--output", "json", "add-style-format", "--style_format_name", "GeoStyler")
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"Added style format GeoStyler!"}`, out)
}

func TestVerboseJSONKeepsStdoutClean(t *testing.T) {
	env := newTestEnv(t, mockws.Config{})

	out, errOut, err := env.run("--output", "json", "style-formats", "-v")
	require.NoError(t, err)

	var names []string
	require.NoError(t, json.Unmarshal([]byte(out), &names))
	assert.Equal(t, []string{"QGIS", "SLD"}, names)
	assert.Contains(t, errOut, "\tFinished!")
}

func TestUnsupportedOutput(t *testing.T) {
	env := newTestEnv(t, mockws.Config{})

	_, _, err := env.run("--output", "xml", "classification-systems")
	assert.ErrorContains(t, err, "unsupported output format")
	assert.Zero(t, env.handler.Hits().Total())
}

func TestClassesAndClassDescribe(t *testing.T) {
	env := newTestEnv(t, mockws.Config{})

	out, _, err := env.run("classes", "--system", "TerraClass_AMZ")
	require.NoError(t, err)
	assert.Equal(t, "Vegetacao Natural\nFloresta Primaria\nPastagem\nAgricultura Anual\n", out)

	out, _, err = env.run("class-describe", "--system", "TerraClass_AMZ", "--system_class", "Pastagem")
	require.NoError(t, err)
	assert.Contains(t, out, "\t- name: Pastagem\n")
	assert.Contains(t, out, "\t- code: 2\n")

	_, _, err = env.run("class-describe", "--system", "TerraClass_AMZ", "--system_class", "Deserto")
	assert.Error(t, err)
}

func TestMappingCommands(t *testing.T) {
	env := newTestEnv(t, mockws.Config{})

	out, _, err := env.run("available-mappings", "--system", "TerraClass_AMZ")
	require.NoError(t, err)
	assert.Equal(t, "PRODES\n", out)

	out, _, err = env.run("mappings", "--system-source", "TerraClass_AMZ", "--system-target", "PRODES")
	require.NoError(t, err)
	assert.Contains(t, out, "\t- source_classification_system: TerraClass_AMZ\n")
	assert.Contains(t, out, "\t- target_classification_system: PRODES\n")
	assert.Contains(t, out, "Floresta Primaria")
}

func TestStyleCommands(t *testing.T) {
	env := newTestEnv(t, mockws.Config{})

	out, _, err := env.run("style-formats")
	require.NoError(t, err)
	assert.Equal(t, "QGIS\nSLD\n", out)

	out, _, err = env.run("styles", "--system_name", "TerraClass_AMZ")
	require.NoError(t, err)
	assert.Equal(t, "QGIS\n", out)

	out, _, err = env.run("style-file", "--system_name", "TerraClass_AMZ", "--style_format_name", "QGIS", "-o", "/styles/")
	require.NoError(t, err)
	assert.Equal(t, "Style file saved in /styles/TerraClass_AMZ_QGIS.qml\n", out)

	data, err := afero.ReadFile(env.fs, "/styles/TerraClass_AMZ_QGIS.qml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "<!DOCTYPE qgis>")
}

func TestLifecycle(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	env := newTestEnv(t, mockws.Config{})
	require := require.New(t)

	require.NoError(afero.WriteFile(env.fs, "classes.json", []byte(`[{"name":"Forest","code":"F"},{"name":"Water","code":"W"}]`), 0o644))
	require.NoError(afero.WriteFile(env.fs, "more.json", []byte(`[{"name":"Urban","code":"U"}]`), 0o644))
	require.NoError(afero.WriteFile(env.fs, "mappings.json", []byte(`[{"source_class":"Forest","target_class":"Floresta"}]`), 0o644))
	require.NoError(afero.WriteFile(env.fs, "style.sld", []byte(`<StyledLayerDescriptor/>`), 0o644))

	steps := []struct {
		args []string
		want string
	}{
		{
			args: []string{"add-classification-system", "--name", "Novo", "--authority_name", "Test",
				"--description", "Test system", "--version", "0.1", "--classes_path", "classes.json"},
			want: "Classification System Novo added!\n",
		},
		{
			args: []string{"add-classes", "--system_name", "Novo", "--classes_path", "more.json"},
			want: "Added classes for Novo\n",
		},
		{
			args: []string{"classes", "--system", "Novo"},
			want: "Forest\nWater\nUrban\n",
		},
		{
			args: []string{"delete-class", "--system_name", "Novo", "--class_name", "Water"},
			want: "Deleted class Water of classification system Novo\n",
		},
		{
			args: []string{"add-mapping", "--system_name_source", "Novo", "--system_name_target", "PRODES", "--mappings_path", "mappings.json"},
			want: "Added Mapping between Novo and PRODES\n",
		},
		{
			args: []string{"add-style-format", "--style_format_name", "GeoStyler"},
			want: "Added style format GeoStyler!\n",
		},
		{
			args: []string{"add-style", "--system_name", "Novo", "--style_format_name", "GeoStyler", "--style_path", "style.sld"},
			want: "Added style GeoStyler for Novo\n",
		},
		{
			args: []string{"style-file", "--system_name", "Novo", "--style_format_name", "GeoStyler"},
			want: "Style file saved in style_Novo_GeoStyler.sld\n",
		},
		{
			args: []string{"delete-style", "--system_name", "Novo", "--style_format_name", "GeoStyler"},
			want: "Deleted style GeoStyler of classification system Novo\n",
		},
		{
			args: []string{"delete-style-format", "--style_format_name", "GeoStyler"},
			want: "Deleted style format GeoStyler\n",
		},
		{
			args: []string{"delete-mapping", "--system_name_source", "Novo", "--system_name_target", "PRODES"},
			want: "Mapping between Novo and PRODES deleted!\n",
		},
		{
			args: []string{"delete-classification-system", "--system_name", "Novo"},
			want: "Deleted classification system: Novo\n",
		},
		{
			args: []string{"classification-systems"},
			want: "TerraClass_AMZ\nPRODES\n",
		},
	}

	for _, step := range steps {
		out, errOut, err := env.run(step.args...)
		require.NoError(err, step.args[0])
		assert.Equal(t, step.want, out, step.args[0])
		assert.Empty(t, errOut, step.args[0])
	}

	exists, err := afero.Exists(env.fs, "style_Novo_GeoStyler.sld")
	require.NoError(err)
	assert.True(t, exists)
}

func TestMissingInputFile(t *testing.T) {
	env := newTestEnv(t, mockws.Config{})

	_, _, err := env.run("add-classes", "--system_name", "PRODES", "--classes_path", "missing.json")
	assert.ErrorIs(t, err, ErrFileNotFound)
	assert.Zero(t, env.handler.Hits().Total())
}

func TestRequiredFlags(t *testing.T) {
	env := newTestEnv(t, mockws.Config{})

	_, _, err := env.run("classes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"system"`)
}

func TestAccessTokenFromEnv(t *testing.T) {
	env := newTestEnv(t, mockws.Config{AccessToken: "secret"})

	_, _, err := env.run("style-formats")
	require.Error(t, err)

	t.Setenv(EnvAccessToken, "secret")
	out, _, err := env.run("style-formats")
	require.NoError(t, err)
	assert.Equal(t, "QGIS\nSLD\n", out)
}

func TestURLFromEnv(t *testing.T) {
	env := newTestEnv(t, mockws.Config{})
	t.Setenv(EnvURL, env.url+"/")

	cmd := NewRootCmd("test", env.fs)
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"style-formats", "-v"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "Server: "+env.url+"\n")
}

func TestMetricsDump(t *testing.T) {
	env := newTestEnv(t, mockws.Config{})

	_, errOut, err := env.run("--metrics", "classification-systems")
	require.NoError(t, err)
	assert.Contains(t, errOut, `lccs_client_requests_total{code="200",method="GET"} 1`)
	assert.Equal(t, 1, env.handler.Hits().Count(http.MethodGet, "/classification_systems"))
}

func TestVersion(t *testing.T) {
	cmd := NewRootCmd("1.2.3", afero.NewMemMapFs())
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "1.2.3")
}
