package pipeline

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nguyentantai21042004/meeting-minutes/internal/aligner"
	"github.com/nguyentantai21042004/meeting-minutes/internal/diarizer"
	"github.com/nguyentantai21042004/meeting-minutes/internal/transcriber"
)

// runState holds everything a run produces. It starts empty so release is
// valid no matter which stage failed.
type runState struct {
	segments    []transcriber.Segment
	diarization *diarizer.Result
	utterances  []aligner.Utterance
	summary     string
}

func (s *runState) release() {
	*s = runState{}
}

// Run orchestrates validation, transcription, diarization, alignment,
// summarization and report writing. Any failure aborts the run with an
// *Error and nothing is saved.
func (p *implPipeline) Run(ctx context.Context, audioPath string) (*Outcome, error) {
	startTime := time.Now()

	state := &runState{}
	defer state.release()

	// Step 1: Validate before any collaborator is touched
	if err := ValidateAudioFile(audioPath, p.deps.Extensions); err != nil {
		return nil, err
	}
	p.logger.Info(ctx, "📂 입력된 파일: %s", audioPath)

	// Step 2: Transcription and diarization only need the raw audio
	if err := p.transcribeAndDiarize(ctx, audioPath, state); err != nil {
		return nil, err
	}

	// Step 3: Attribute transcript text to speakers
	state.utterances = aligner.Align(state.diarization, state.segments, p.deps.Alignment)
	p.logger.Info(ctx, "Aligned %d segments into %d speaker utterances", len(state.segments), len(state.utterances))
	if len(state.utterances) == 0 {
		p.logger.Warn(ctx, "No transcript segment fell inside a diarization turn")
	}

	// Step 4: Summarize
	p.logger.Info(ctx, "🔹 [3/4] LLM을 사용한 요약 생성 중...")
	summary, err := p.deps.Summarizer.Summarize(ctx, state.utterances)
	if err != nil {
		return nil, newSummarizationFailed(audioPath, err)
	}
	state.summary = summary
	p.logger.Info(ctx, "✅ 요약 생성 완료!")

	// Step 5: Persist the report
	p.logger.Info(ctx, "🔹 [4/4] Markdown 저장 중...")
	reportPath, err := p.deps.Writer.Write(ctx, state.summary, state.utterances)
	if err != nil {
		return nil, newSaveFailed(audioPath, err)
	}

	outcome := &Outcome{
		ReportPath: reportPath,
		Segments:   len(state.segments),
		Speakers:   len(state.utterances),
		Duration:   time.Since(startTime),
	}
	p.logger.Info(ctx, "Processing time: %s", outcome.Duration)
	return outcome, nil
}

// transcribeAndDiarize runs both engines concurrently. The first failure
// cancels the other call and is the one reported.
func (p *implPipeline) transcribeAndDiarize(ctx context.Context, audioPath string, state *runState) error {
	g, gctx := errgroup.WithContext(ctx)

	var segments []transcriber.Segment
	var diarization *diarizer.Result

	g.Go(func() error {
		p.logger.Info(gctx, "🔹 [1/4] 음성 파일 변환 시작... (%s)", p.deps.Transcriber.Name())
		out, err := p.deps.Transcriber.Transcribe(gctx, audioPath)
		if err != nil {
			return newTranscriptionFailed(audioPath, err)
		}
		segments = out
		p.logger.Info(gctx, "✅ Whisper 변환 완료! (%d segments)", len(out))
		return nil
	})

	g.Go(func() error {
		p.logger.Info(gctx, "🔹 [2/4] 화자 분리 수행 중... (%s)", p.deps.Diarizer.Name())
		out, err := p.deps.Diarizer.Diarize(gctx, audioPath)
		if err != nil {
			return newDiarizationFailed(audioPath, err)
		}
		if out == nil {
			out = &diarizer.Result{}
		}
		diarization = out
		p.logger.Info(gctx, "✅ 화자 분리 완료! (%d turns, %d speakers)", len(out.Turns), len(out.Speakers()))
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	state.segments = segments
	state.diarization = diarization
	return nil
}
