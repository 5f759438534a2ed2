package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/csonar/clang/treesitter"
	"github.com/dhamidi/csonar/config"
	"github.com/dhamidi/csonar/format"
)

const commentSource = `/** Adds. */
int add(int a, int b);

int plain(void);

struct S {
	int x; ///< the x
};
`

func TestPrintComments(t *testing.T) {
	t.Parallel()

	tu, err := treesitter.Parse(context.Background(), "c.h", []byte(commentSource))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printComments(format.NewLineEncoder(&buf), tu.Entities(), nil))
	assert.Equal(t, "comment\tadd\tAdds.\ncomment\tx\tthe x\n", buf.String())

	buf.Reset()
	require.NoError(t, printComments(format.NewLineEncoder(&buf), tu.Entities(), []string{"x"}))
	assert.Equal(t, "comment\tx\tthe x\n", buf.String())
}

func TestNewFrontend(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	f, err := newFrontend(cfg)
	require.NoError(t, err)
	assert.NotNil(t, f.parser)
	assert.Nil(t, f.driver)

	cfg.Frontend = "astdump"
	cfg.Clang.Args = "-Iinclude"
	f, err = newFrontend(cfg)
	require.NoError(t, err)
	require.NotNil(t, f.driver)
	assert.Equal(t, []string{"-Iinclude"}, f.driver.Args)
	assert.Equal(t, cfg.Sonar.SystemDirs, f.driver.SystemDirs)
}
