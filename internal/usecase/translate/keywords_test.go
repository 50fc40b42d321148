package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpretKeywordsFile(t *testing.T) {
	cmd, ok := interpretKeywords("make a file notes.txt somehow")
	assert.True(t, ok)
	assert.Equal(t, "touch notes.txt", cmd)

	cmd, ok = interpretKeywords("make a file")
	assert.True(t, ok)
	assert.Equal(t, "touch newfile.txt", cmd)
}

func TestInterpretKeywordsFolder(t *testing.T) {
	cmd, ok := interpretKeywords("new folder stuff please")
	assert.True(t, ok)
	assert.Equal(t, "mkdir stuff", cmd)

	cmd, ok = interpretKeywords("make a folder")
	assert.True(t, ok)
	assert.Equal(t, "mkdir newfolder", cmd)
}

func TestInterpretKeywordsNavigate(t *testing.T) {
	cmd, ok := interpretKeywords("go to workspace")
	assert.True(t, ok)
	assert.Equal(t, "cd workspace", cmd)
}

func TestInterpretKeywordsDeleteSkipsFillerWords(t *testing.T) {
	cmd, ok := interpretKeywords("remove the file junk.bin")
	assert.True(t, ok)
	assert.Equal(t, "rm junk.bin", cmd)
}

func TestInterpretKeywordsNoMatch(t *testing.T) {
	_, ok := interpretKeywords("sing me a song")
	assert.False(t, ok)
}
