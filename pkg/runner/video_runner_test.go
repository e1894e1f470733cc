package runner

import (
	"context"
	"strings"
	"testing"

	"github.com/shouni/go-campaign-kit/pkg/domain"
	"github.com/shouni/go-campaign-kit/pkg/generator"
	"github.com/shouni/go-campaign-kit/pkg/render"
	"github.com/shouni/go-campaign-kit/pkg/store"
)

func newTestVideoRunner(t *testing.T, voiceGen *fakeTextGen, gw *fakeGateway, st *store.Store) *VideoRunner {
	t.Helper()
	vr, err := NewVideoRunner(generator.NewVoiceScriptGenerator(voiceGen), gw, &fakeChecker{}, st)
	if err != nil {
		t.Fatalf("初期化に失敗したのだ: %v", err)
	}
	return vr
}

func videoReadyStore(prompt string) *store.Store {
	st := newWizardStore()
	st.SetVideoPrompt(prompt)
	st.SetGeneratedPosts([]domain.GeneratedPost{
		{ID: 1, ImageError: "render rejected"},
		{ID: 2, ImageURL: "https://cdn/img-2.png"},
	})
	return st
}

func TestVideoRunner_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("縦型動画を生成してストアに記録するのだ", func(t *testing.T) {
		st := videoReadyStore("A cinematic vertical shot of coffee.")
		gw := &fakeGateway{}
		result, err := newTestVideoRunner(t, &fakeTextGen{response: "El sabor del sur."}, gw, st).Run(ctx)
		if err != nil {
			t.Fatalf("生成に失敗したのだ: %v", err)
		}

		if !result.Success || len(result.Output) != 1 {
			t.Fatalf("成功結果のはずなのだ: %+v", result)
		}
		if st.Snapshot().AgentResponses.VideoResult != result.Output[0] {
			t.Error("ストアに記録されていないのだ")
		}
		if gw.videoReq.Ratio != render.RatioVertical {
			t.Errorf("縦型比率のはずなのだ: %s", gw.videoReq.Ratio)
		}
		if gw.videoReq.PromptImage != "https://cdn/img-2.png" {
			t.Errorf("描画済みの最初の画像がベースのはずなのだ: %s", gw.videoReq.PromptImage)
		}
		if gw.videoReq.VoiceScript != "El sabor del sur." {
			t.Errorf("台本が渡っていないのだ: %q", gw.videoReq.VoiceScript)
		}
	})

	t.Run("長いプロンプトは上限に収めてサフィックスを付けるのだ", func(t *testing.T) {
		st := videoReadyStore(strings.Repeat("a", 1500))
		gw := &fakeGateway{}
		if _, err := newTestVideoRunner(t, &fakeTextGen{response: "ok"}, gw, st).Run(ctx); err != nil {
			t.Fatalf("生成に失敗したのだ: %v", err)
		}

		got := []rune(gw.videoReq.Prompt)
		if len(got) != maxVideoPromptRunes {
			t.Errorf("ちょうど上限のはずなのだ: %d", len(got))
		}
		if !strings.HasSuffix(gw.videoReq.Prompt, videoPromptSuffix) {
			t.Error("サフィックスが付いていないのだ")
		}
	})

	t.Run("台本の拒否応答は空台本として続行するのだ", func(t *testing.T) {
		st := videoReadyStore("A shot.")
		gw := &fakeGateway{}
		result, err := newTestVideoRunner(t, &fakeTextGen{response: "Lo siento, no puedo generar eso."}, gw, st).Run(ctx)
		if err != nil {
			t.Fatalf("生成に失敗したのだ: %v", err)
		}
		if !result.Success {
			t.Error("成功のはずなのだ")
		}
		if gw.videoReq.VoiceScript != "" {
			t.Errorf("拒否応答は空台本になるはずなのだ: %q", gw.videoReq.VoiceScript)
		}
	})

	t.Run("プロンプト未生成はエラーなのだ", func(t *testing.T) {
		result, err := newTestVideoRunner(t, &fakeTextGen{response: "ok"}, &fakeGateway{}, newWizardStore()).Run(ctx)
		if err == nil {
			t.Fatal("エラーになるはずなのだ")
		}
		if result.Success || result.Error == "" {
			t.Errorf("失敗結果のはずなのだ: %+v", result)
		}
	})
}
