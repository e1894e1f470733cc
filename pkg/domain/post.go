package domain

// GeneratedPost は、キャンペーン投稿 1 件分のコンセプトと描画結果です。
// Description は英語の画像プロンプト、Caption はスペイン語のキャプションです。
type GeneratedPost struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Caption     string `json:"caption"`
	ImageURL    string `json:"imageUrl,omitempty"`
	ImageError  string `json:"imageError,omitempty"`
}

// PostGenerationResult は投稿生成ワークフロー全体の結果です。
// コンセプト生成に成功すれば、個別画像の失敗があっても Success は true です。
type PostGenerationResult struct {
	Success bool            `json:"success"`
	Posts   []GeneratedPost `json:"posts,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// VideoGenerationResult は動画生成の結果です。Output は生成物 URL の配列です。
type VideoGenerationResult struct {
	Success bool     `json:"success"`
	Output  []string `json:"output,omitempty"`
	Error   string   `json:"error,omitempty"`
}
