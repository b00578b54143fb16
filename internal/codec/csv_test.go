package codec

import (
	"testing"

	"github.com/postit-dev/postit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVEncode(t *testing.T) {
	t.Run("fixed field order without header", func(t *testing.T) {
		l := model.NewTaskList(
			model.Task{ID: 1, Content: "Task", Priority: model.PriorityLow},
			model.Task{ID: 2, Content: "New task", Priority: model.PriorityMed},
		)
		data, err := CSV{}.Encode(l)
		require.NoError(t, err)
		assert.Equal(t, "1,Task,low,false\n2,New task,med,false\n", string(data))
	})

	t.Run("content with commas is quoted", func(t *testing.T) {
		l := model.NewTaskList(model.Task{ID: 3, Content: "a, b", Priority: model.PriorityHigh, Checked: true})
		data, err := CSV{}.Encode(l)
		require.NoError(t, err)
		assert.Equal(t, "3,\"a, b\",high,true\n", string(data))
	})

	t.Run("empty list encodes to nothing", func(t *testing.T) {
		data, err := CSV{}.Encode(model.NewTaskList())
		require.NoError(t, err)
		assert.Empty(t, data)
	})
}

func TestCSVDecode(t *testing.T) {
	t.Run("single row", func(t *testing.T) {
		l, err := CSV{}.Decode([]byte("1,Task,low,false\n"))
		require.NoError(t, err)
		require.Equal(t, 1, l.Len())
		assert.Equal(t, model.Task{ID: 1, Content: "Task", Priority: model.PriorityLow}, l.Tasks[0])
	})

	t.Run("trailing blank lines and whitespace are tolerated", func(t *testing.T) {
		l, err := CSV{}.Decode([]byte("1,Task,low,false\n2,Other,none,true\n\n   \n"))
		require.NoError(t, err)
		assert.Equal(t, []uint32{1, 2}, l.IDs())
	})

	t.Run("windows line endings", func(t *testing.T) {
		l, err := CSV{}.Decode([]byte("1,Task,low,false\r\n2,Other,high,true\r\n"))
		require.NoError(t, err)
		assert.Equal(t, []uint32{1, 2}, l.IDs())
		assert.True(t, l.Tasks[1].Checked)
	})

	t.Run("legacy header row is skipped", func(t *testing.T) {
		l, err := CSV{}.Decode([]byte("id,content,priority,checked\n1,Task,low,false\n"))
		require.NoError(t, err)
		assert.Equal(t, []uint32{1}, l.IDs())
	})

	t.Run("header only is an empty list", func(t *testing.T) {
		l, err := CSV{}.Decode([]byte("id,content,priority,checked\n"))
		require.NoError(t, err)
		assert.True(t, l.IsEmpty())
	})

	errorCases := []struct {
		name  string
		input string
	}{
		{"too few fields", "1,Task,low\n"},
		{"too many fields", "1,Task,low,false,extra\n"},
		{"unknown priority", "1,Task,urgent,false\n"},
		{"invalid checked", "1,Task,low,yes\n"},
		{"invalid id", "one,Task,low,false\n"},
		{"zero id", "0,Task,low,false\n"},
		{"bad second row", "1,Task,low,false\n2,Task\n"},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			l, err := CSV{}.Decode([]byte(tt.input))
			require.Error(t, err)
			assert.Nil(t, l, "decode must be all-or-nothing")
			assert.True(t, IsFormatError(err))
		})
	}

	t.Run("error names the record", func(t *testing.T) {
		_, err := CSV{}.Decode([]byte("1,Task,low,false\n2,Task,urgent,false\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "record 2")
	})
}
