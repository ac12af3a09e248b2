package telemetry_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/telemetry"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type ctxKey struct{}

func TestTee_RecordFansOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mocks.NewMockTelemetry(ctrl)
	second := mocks.NewMockTelemetry(ctrl)
	v1 := mocks.NewMockVertex(ctrl)
	v2 := mocks.NewMockVertex(ctrl)

	firstCtx := context.WithValue(context.Background(), ctxKey{}, "first")
	first.EXPECT().Record(gomock.Any(), "compile main.o").Return(firstCtx, v1)
	second.EXPECT().Record(gomock.Any(), "compile main.o").DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			assert.Equal(t, "first", ctx.Value(ctxKey{}))
			return ctx, v2
		})

	var out1, out2, err1, err2 bytes.Buffer
	v1.EXPECT().Stdout().Return(&out1)
	v2.EXPECT().Stdout().Return(&out2)
	v1.EXPECT().Stderr().Return(&err1)
	v2.EXPECT().Stderr().Return(&err2)
	v1.EXPECT().Log(domain.LogLevelWarn, "1 warning")
	v2.EXPECT().Log(domain.LogLevelWarn, "1 warning")
	failure := errors.New("exit status 1")
	v1.EXPECT().Complete(failure)
	v2.EXPECT().Complete(failure)

	tee := telemetry.NewTee(first, second)
	ctx, vertex := tee.Record(context.Background(), "compile main.o")

	fromCtx, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, vertex, fromCtx)

	_, err := vertex.Stdout().Write([]byte("main.c\n"))
	require.NoError(t, err)
	_, err = vertex.Stderr().Write([]byte("warning\n"))
	require.NoError(t, err)
	vertex.Log(domain.LogLevelWarn, "1 warning")
	vertex.Complete(failure)

	assert.Equal(t, "main.c\n", out1.String())
	assert.Equal(t, "main.c\n", out2.String())
	assert.Equal(t, "warning\n", err1.String())
	assert.Equal(t, "warning\n", err2.String())
}

func TestTee_Cached(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockTelemetry(ctrl)
	v := mocks.NewMockVertex(ctrl)

	backend.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Vertex) { return ctx, v })
	v.EXPECT().Cached()

	_, vertex := telemetry.NewTee(backend).Record(context.Background(), "link demo")
	vertex.Cached()
}

func TestTee_CloseJoinsErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mocks.NewMockTelemetry(ctrl)
	second := mocks.NewMockTelemetry(ctrl)
	third := mocks.NewMockTelemetry(ctrl)

	errA := errors.New("flush failed")
	errB := errors.New("shutdown failed")
	first.EXPECT().Close().Return(errA)
	second.EXPECT().Close().Return(nil)
	third.EXPECT().Close().Return(errB)

	err := telemetry.NewTee(first, second, third).Close()
	require.ErrorIs(t, err, errA)
	require.ErrorIs(t, err, errB)
}

func TestTee_Empty(t *testing.T) {
	tee := telemetry.NewTee()

	_, vertex := tee.Record(context.Background(), "compile main.o")
	n, err := vertex.Stdout().Write([]byte("x"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	vertex.Complete(nil)

	require.NoError(t, tee.Close())
}
