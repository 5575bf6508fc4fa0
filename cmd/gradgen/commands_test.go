package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/gradgen"
)

const defaultDeclaration = "background-image: linear-gradient(90deg, rgba(79, 70, 229, 1.00) 0%, rgba(236, 72, 153, 1.00) 100%);"

// runCLI executes the root command with fresh config and flag state and
// returns what it wrote to stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	resetKoanf()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(""))
	// A nil slice makes cobra fall back to os.Args.
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default so commands do not see
// values left over from an earlier Execute.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})
	return dir
}

func tokenOf(t *testing.T, s *gradgen.State) string {
	t.Helper()
	token, err := gradgen.Encode(s)
	require.NoError(t, err)
	return token
}

func TestRenderCommand(t *testing.T) {
	t.Run("default gradient", func(t *testing.T) {
		out, err := runCLI(t, "render")
		require.NoError(t, err)
		assert.Equal(t, defaultDeclaration+"\n", out)
	})

	t.Run("root renders by default", func(t *testing.T) {
		out, err := runCLI(t)
		require.NoError(t, err)
		assert.Equal(t, defaultDeclaration+"\n", out)
	})

	t.Run("flags override token", func(t *testing.T) {
		out, err := runCLI(t, "render", tokenOf(t, gradgen.NewState()),
			"--type", "conic", "--angle", "999", "--opacity", "50", "--format", "function")
		require.NoError(t, err)
		assert.Equal(t, "conic-gradient(from 360deg, rgba(79, 70, 229, 0.50) 0%, rgba(236, 72, 153, 0.50) 100%)\n", out)
	})

	t.Run("stops from flags", func(t *testing.T) {
		out, err := runCLI(t, "render", "--stop", "#F00", "--stop", "#00f", "--stop", "#0f0@-5", "--format", "function")
		require.NoError(t, err)
		assert.Equal(t, "linear-gradient(90deg, rgba(255, 0, 0, 1.00) 0%, rgba(0, 255, 0, 1.00) 0%, rgba(0, 0, 255, 1.00) 50%)\n", out)
	})

	t.Run("page url input", func(t *testing.T) {
		s := gradgen.NewState()
		s.SetKind(gradgen.Radial)
		link, err := gradgen.ShareURL("https://example.com/", s)
		require.NoError(t, err)

		out, err := runCLI(t, "render", link, "--format", "rule", "--selector", ".hero")
		require.NoError(t, err)
		assert.Equal(t, ".hero {\n  background-image: radial-gradient(circle, rgba(79, 70, 229, 1.00) 0%, rgba(236, 72, 153, 1.00) 100%);\n}\n", out)
	})

	t.Run("bad kind", func(t *testing.T) {
		_, err := runCLI(t, "render", "--type", "diamond")
		assert.ErrorIs(t, err, gradgen.ErrUnknownKind)
	})

	t.Run("bad stop color", func(t *testing.T) {
		_, err := runCLI(t, "render", "--stop", "red", "--stop", "#00f")
		assert.ErrorIs(t, err, gradgen.ErrInvalidColor)
	})

	t.Run("single stop", func(t *testing.T) {
		_, err := runCLI(t, "render", "--stop", "#00f")
		assert.ErrorIs(t, err, gradgen.ErrInsufficientStops)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := runCLI(t, "render", "%%%")
		assert.ErrorIs(t, err, gradgen.ErrMalformedEncoding)
	})

	t.Run("quiet", func(t *testing.T) {
		out, err := runCLI(t, "render", "--quiet")
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}

func TestShareCommand(t *testing.T) {
	out, err := runCLI(t, "share", "--base-url", "https://grad.example/app?x=1#frag", "--type", "radial")
	require.NoError(t, err)

	link := strings.TrimSpace(out)
	assert.True(t, strings.HasPrefix(link, "https://grad.example/app?gradient="), link)

	token, ok := gradgen.TokenFromURL(link)
	require.True(t, ok)
	s, err := gradgen.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, gradgen.Radial, s.Kind())
}

func TestDecodeCommand(t *testing.T) {
	s := gradgen.NewState()
	s.SetAngle(45)
	token := tokenOf(t, s)

	t.Run("summary", func(t *testing.T) {
		out, err := runCLI(t, "decode", token)
		require.NoError(t, err)
		assert.Contains(t, out, "45°")
		assert.Contains(t, out, "#4f46e5")
		assert.Contains(t, out, "Share:")
	})

	t.Run("json", func(t *testing.T) {
		out, err := runCLI(t, "decode", token, "--format", "json")
		require.NoError(t, err)
		var got gradgen.JSONOutput
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, 45, got.Angle)
		assert.Equal(t, token, got.Token)
	})

	t.Run("stdin", func(t *testing.T) {
		resetKoanf()
		resetFlags(rootCmd)
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetIn(strings.NewReader(token + "\n"))
		rootCmd.SetArgs([]string{"decode", "-", "--format", "token"})
		t.Cleanup(func() {
			rootCmd.SetOut(nil)
			rootCmd.SetIn(nil)
		})
		require.NoError(t, rootCmd.Execute())
		assert.Equal(t, token+"\n", out.String())
	})

	t.Run("malformed payload", func(t *testing.T) {
		// "not json"
		_, err := runCLI(t, "decode", "bm90IGpzb24=")
		require.ErrorIs(t, err, gradgen.ErrMalformedPayload)
		assert.Contains(t, err.Error(), "does not contain a gradient record")
	})
}

func TestRandomCommand(t *testing.T) {
	first, err := runCLI(t, "random", "--seed", "7", "--format", "token")
	require.NoError(t, err)
	second, err := runCLI(t, "random", "--seed", "7", "--format", "token")
	require.NoError(t, err)
	assert.Equal(t, first, second, "a seed makes output reproducible")

	s, err := gradgen.Decode(strings.TrimSpace(first))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, s.Len(), 2)
	assert.LessOrEqual(t, s.Len(), 5)
}

func TestParseCommand(t *testing.T) {
	out, err := runCLI(t, "parse", defaultDeclaration)
	require.NoError(t, err)

	s, err := gradgen.Decode(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.True(t, s.Equal(gradgen.NewState()))

	_, err = runCLI(t, "parse", "color: red")
	assert.ErrorIs(t, err, gradgen.ErrUnparseableCSS)
}

func TestPreviewCommand(t *testing.T) {
	out, err := runCLI(t, "preview", "--stop", "#ff0000@0", "--stop", "#0000ff@100")
	require.NoError(t, err)
	assert.Contains(t, out, "[#ff0000 0% → #0000ff 100%]")
	assert.Contains(t, out, "2 stops:")
}

func TestBuildCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "presets")
	require.NoError(t, os.MkdirAll(src, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "sunset.yaml"), []byte(`
type: linear-gradient
angle: 45
colors:
  - {color: "#ff7e5f", position: 0}
  - {color: "#feb47b", position: 100}
`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "ocean.toml"), []byte(`
type = "radial"

[[colors]]
color = "#2193b0"
position = 0

[[colors]]
color = "#6dd5ed"
position = 100
`), 0644))

	output := filepath.Join(dir, "out", "gradients.css")
	_, err := runCLI(t, "build", "--source", src, "--output", output, "--prefix", "bg-", "--header=false")
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	css := string(data)
	assert.True(t, strings.HasPrefix(css, ".bg-ocean {"), css)
	assert.Contains(t, css, ".bg-sunset {\n  background-image: linear-gradient(45deg,")
	assert.Contains(t, css, "radial-gradient(circle, rgba(33, 147, 176, 1.00) 0%")
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "gradgen dev\n", out)
}

func TestCompletionCommand(t *testing.T) {
	out, err := runCLI(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "gradgen")
}
