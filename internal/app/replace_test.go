package app

import (
	"context"
	"sync"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/innocenzi/dependi/internal/core"
	"github.com/innocenzi/dependi/internal/types"
)

// fakeDocument records every mutation so tests can assert application
// order without touching the filesystem.
type fakeDocument struct {
	mu       sync.Mutex
	replaced []types.ReplaceInstruction
	saves    int
	failNext bool
}

func (d *fakeDocument) ReplaceRange(r types.Range, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failNext {
		d.failNext = false
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("range out of bounds")
	}
	d.replaced = append(d.replaced, types.ReplaceInstruction{Value: text, Range: r})
	return nil
}

func (d *fakeDocument) Save(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.saves++
	return nil
}

func (d *fakeDocument) Text() string { return "" }

func (d *fakeDocument) applied() []types.ReplaceInstruction {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]types.ReplaceInstruction(nil), d.replaced...)
}

func (d *fakeDocument) saveCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.saves
}

func replaceService() Service {
	return Service{Session: NewSession()}
}

func rangeAt(line int, from int, to int) types.Range {
	return types.Range{
		Start: types.Position{Line: line, Character: from},
		End:   types.Position{Line: line, Character: to},
	}
}

func TestReplaceSingle(t *testing.T) {
	svc := replaceService()
	doc := &fakeDocument{}
	instruction := types.ReplaceInstruction{Value: "2.0.0", Range: rangeAt(3, 9, 14)}
	payload, err := core.EncodeReplacePayload(instruction)
	require.NoError(t, err)

	require.NoError(t, svc.ReplaceSingle(context.Background(), doc, payload))
	svc.Session.WaitSaves()

	if diff := cmp.Diff([]types.ReplaceInstruction{instruction}, doc.applied()); diff != "" {
		t.Fatalf("unexpected replacements (-want +got):\n%s", diff)
	}
	require.Equal(t, 1, doc.saveCount())
	require.True(t, svc.Session.TryAcquire(), "guard must be released after the replace")
}

func TestReplaceSingleMalformedPayload(t *testing.T) {
	svc := replaceService()
	doc := &fakeDocument{}

	err := svc.ReplaceSingle(context.Background(), doc, "%%%")
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	require.Empty(t, doc.applied(), "malformed payload must not touch the document")
	require.Equal(t, 0, doc.saveCount())
}

func TestReplaceSingleDroppedWhileInProgress(t *testing.T) {
	svc := replaceService()
	doc := &fakeDocument{}
	payload, err := core.EncodeReplacePayload(types.ReplaceInstruction{Value: "2.0.0", Range: rangeAt(0, 0, 5)})
	require.NoError(t, err)

	require.True(t, svc.Session.TryAcquire())
	require.NoError(t, svc.ReplaceSingle(context.Background(), doc, payload))

	require.Empty(t, doc.applied(), "concurrent replace must be dropped, not applied")
	require.Equal(t, 0, doc.saveCount())
}

func TestReplaceAllReverseOrder(t *testing.T) {
	svc := replaceService()
	doc := &fakeDocument{}
	first := types.ReplaceInstruction{Value: "1.1.0", Range: rangeAt(2, 9, 14)}
	second := types.ReplaceInstruction{Value: "3.0.0", Range: rangeAt(5, 8, 13)}
	svc.Session.Queue(first)
	svc.Session.Queue(second)

	result, err := svc.ReplaceAll(context.Background(), doc)
	require.NoError(t, err)
	svc.Session.WaitSaves()

	require.Equal(t, 2, result.Applied)
	if diff := cmp.Diff([]types.ReplaceInstruction{second, first}, doc.applied()); diff != "" {
		t.Fatalf("instructions not applied in reverse order (-want +got):\n%s", diff)
	}
	require.Equal(t, 1, doc.saveCount())
	require.Equal(t, 0, svc.Session.Pending())
}

func TestReplaceAllContinuesPastRejectedRange(t *testing.T) {
	svc := replaceService()
	doc := &fakeDocument{failNext: true}
	svc.Session.Queue(types.ReplaceInstruction{Value: "1.1.0", Range: rangeAt(2, 9, 14)})
	svc.Session.Queue(types.ReplaceInstruction{Value: "3.0.0", Range: rangeAt(5, 8, 13)})

	result, err := svc.ReplaceAll(context.Background(), doc)
	require.NoError(t, err)
	svc.Session.WaitSaves()

	require.Equal(t, 1, result.Applied)
	require.Len(t, doc.applied(), 1)
	require.Equal(t, "1.1.0", doc.applied()[0].Value)
}

func TestReplaceAllDroppedWhileInProgress(t *testing.T) {
	svc := replaceService()
	doc := &fakeDocument{}
	svc.Session.Queue(types.ReplaceInstruction{Value: "1.1.0", Range: rangeAt(2, 9, 14)})

	require.True(t, svc.Session.TryAcquire())
	result, err := svc.ReplaceAll(context.Background(), doc)
	require.NoError(t, err)

	require.Equal(t, 0, result.Applied)
	require.Empty(t, doc.applied())
	require.Equal(t, 1, svc.Session.Pending(), "dropped replace-all must leave the queue intact")
}

func TestReplaceAllEmptyQueueSkipsSave(t *testing.T) {
	svc := replaceService()
	doc := &fakeDocument{}

	result, err := svc.ReplaceAll(context.Background(), doc)
	require.NoError(t, err)
	svc.Session.WaitSaves()

	require.Equal(t, 0, result.Applied)
	require.Equal(t, 0, doc.saveCount())
}
