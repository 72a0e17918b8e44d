package i18n

var catalog = map[Lang]map[string]string{
	Ko: {
		"title":                         "LangGPT",
		"footer":                        "© LangGPT · 머신러닝 기반 한일 번역",
		"user":                          "사용자",
		"loading":                       "불러오는 중...",
		"processing":                    "처리 중...",
		"change_direction":              "번역 방향 바꾸기",
		"direction.ko2ja":               "한국어 → 일본어",
		"direction.ja2ko":               "일본어 → 한국어",
		"nav.welcome":                   "{{username}}님, 환영합니다",
		"nav.translate":                 "번역",
		"nav.history":                   "번역 기록",
		"nav.settings":                  "설정",
		"nav.login":                     "로그인",
		"nav.logout":                    "로그아웃",
		"nav.register":                  "회원가입",
		"auth.tagline":                  "머신러닝 기반 한일/일한 번역 서비스",
		"auth.username":                 "사용자명",
		"auth.email":                    "이메일",
		"auth.password":                 "비밀번호",
		"auth.confirm_password":         "비밀번호 확인",
		"auth.no_account":               "계정이 없으신가요?",
		"auth.have_account":             "이미 계정이 있으신가요?",
		"auth.login_link":               "로그인하기",
		"auth.register_link":            "회원가입하기",
		"auth.register_success":         "회원가입이 완료되었습니다. 로그인해주세요.",
		"form.ko_input":                 "한국어 입력",
		"form.ja_input":                 "일본어 입력",
		"form.ko_placeholder":           "번역할 한국어 문장을 입력하세요",
		"form.ja_placeholder":           "번역할 일본어 문장을 입력하세요",
		"form.translate":                "번역하기",
		"form.translating":              "번역 중...",
		"result.translated":             "번역 결과",
		"result.original":               "원문",
		"result.show_original":          "원문 보기",
		"result.initial":                "초벌 번역 보기",
		"result.copied":                 "번역 결과를 클립보드에 복사했습니다.",
		"result.copy_failed":            "클립보드 복사에 실패했습니다.",
		"history.title":                 "나의 번역 기록",
		"history.recent":                "최근 번역",
		"history.view_all":              "전체 기록 보기",
		"history.empty":                 "번역 기록이 없습니다.",
		"settings.title":                "계정 설정",
		"settings.account_info":         "계정 정보",
		"settings.api_key":              "OpenAI API 키",
		"settings.api_key_section":      "OpenAI API 키 설정",
		"settings.api_key_active":       "API 키가 설정되어 있습니다.",
		"settings.api_key_required":     "API 키를 설정하지 않으면 번역 기능을 사용할 수 없습니다.",
		"settings.api_key_updated":      "API 키가 성공적으로 업데이트되었습니다.",
		"settings.api_key_instructions": "API 키 설정 방법",
		"settings.visit_openai":         "1. OpenAI 웹사이트를 방문하세요: ",
		"settings.create_account":       "2. 계정이 없다면 계정을 만드세요.",
		"settings.create_key":           "3. \"API 키 생성\"을 클릭하여 새 API 키를 만드세요.",
		"settings.copy_key":             "4. 생성된 API 키를 아래 입력란에 붙여넣으세요.",
		"settings.invalid_api_key":      "API 키 형식이 올바르지 않습니다. OpenAI API 키는 \"sk-\"로 시작해야 합니다.",
		"settings.update_failed":        "API 키 업데이트에 실패했습니다.",
		"settings.save":                 "저장",
		"settings.back_to_translator":   "번역기로 돌아가기",
		"settings.session_expires":      "세션 만료: {{time}}",
		"settings.browser_opened":       "브라우저에서 API 키 페이지를 열었습니다.",
		"settings.browser_failed":       "브라우저를 열 수 없습니다: {{url}}",
		"errors.login_failed":           "로그인에 실패했습니다. 사용자명과 비밀번호를 확인하세요.",
		"errors.login_required":         "로그인이 필요합니다. 다시 로그인해주세요.",
		"errors.password_mismatch":      "비밀번호가 일치하지 않습니다.",
		"errors.register_failed":        "회원가입 중 오류가 발생했습니다.",
		"errors.invalid_input":          "입력 형식이 올바르지 않습니다.",
		"errors.translation_failed":     "번역에 실패했습니다. 잠시 후 다시 시도해주세요.",
		"errors.history_failed":         "기록을 불러오는데 실패했습니다.",
		"help.quit":                     "종료",
		"help.language":                 "언어",
		"help.navigate":                 "이동",
		"help.submit":                   "제출",
		"help.edit":                     "입력",
		"help.done":                     "완료",
		"help.switch_form":              "로그인/회원가입 전환",
		"help.toggle":                   "방향",
		"help.copy":                     "복사",
		"help.open_browser":             "키 발급 페이지",
		"help.scroll":                   "스크롤",
		"help.refresh":                  "새로고침",
	},
	Ja: {
		"title":                         "LangGPT",
		"footer":                        "© LangGPT · 機械学習による日韓翻訳",
		"user":                          "ユーザー",
		"loading":                       "読み込み中...",
		"processing":                    "処理中...",
		"change_direction":              "翻訳方向を切り替える",
		"direction.ko2ja":               "韓国語 → 日本語",
		"direction.ja2ko":               "日本語 → 韓国語",
		"nav.welcome":                   "{{username}}さん、ようこそ",
		"nav.translate":                 "翻訳",
		"nav.history":                   "翻訳履歴",
		"nav.settings":                  "設定",
		"nav.login":                     "ログイン",
		"nav.logout":                    "ログアウト",
		"nav.register":                  "新規登録",
		"auth.tagline":                  "機械学習による韓日・日韓翻訳サービス",
		"auth.username":                 "ユーザー名",
		"auth.email":                    "メールアドレス",
		"auth.password":                 "パスワード",
		"auth.confirm_password":         "パスワード（確認）",
		"auth.no_account":               "アカウントをお持ちでないですか？",
		"auth.have_account":             "すでにアカウントをお持ちですか？",
		"auth.login_link":               "ログインする",
		"auth.register_link":            "新規登録する",
		"auth.register_success":         "登録が完了しました。ログインしてください。",
		"form.ko_input":                 "韓国語入力",
		"form.ja_input":                 "日本語入力",
		"form.ko_placeholder":           "翻訳する韓国語の文章を入力してください",
		"form.ja_placeholder":           "翻訳する日本語の文章を入力してください",
		"form.translate":                "翻訳する",
		"form.translating":              "翻訳中...",
		"result.translated":             "翻訳結果",
		"result.original":               "原文",
		"result.show_original":          "原文を表示",
		"result.initial":                "下訳を表示",
		"result.copied":                 "翻訳結果をクリップボードにコピーしました。",
		"result.copy_failed":            "クリップボードへのコピーに失敗しました。",
		"history.title":                 "翻訳履歴",
		"history.recent":                "最近の翻訳",
		"history.view_all":              "すべての履歴を見る",
		"history.empty":                 "翻訳履歴がありません。",
		"settings.title":                "アカウント設定",
		"settings.account_info":         "アカウント情報",
		"settings.api_key":              "OpenAI APIキー",
		"settings.api_key_section":      "OpenAI APIキー設定",
		"settings.api_key_active":       "APIキーが設定されています。",
		"settings.api_key_required":     "APIキーを設定しないと翻訳機能を利用できません。",
		"settings.api_key_updated":      "APIキーを更新しました。",
		"settings.api_key_instructions": "APIキーの設定方法",
		"settings.visit_openai":         "1. OpenAIのウェブサイトにアクセスしてください: ",
		"settings.create_account":       "2. アカウントがない場合は作成してください。",
		"settings.create_key":           "3. 「APIキーを作成」をクリックして新しいキーを作成してください。",
		"settings.copy_key":             "4. 作成したAPIキーを下の入力欄に貼り付けてください。",
		"settings.invalid_api_key":      "APIキーの形式が正しくありません。OpenAIのAPIキーは「sk-」で始まります。",
		"settings.update_failed":        "APIキーの更新に失敗しました。",
		"settings.save":                 "保存",
		"settings.back_to_translator":   "翻訳画面に戻る",
		"settings.session_expires":      "セッション有効期限: {{time}}",
		"settings.browser_opened":       "ブラウザでAPIキーのページを開きました。",
		"settings.browser_failed":       "ブラウザを開けませんでした: {{url}}",
		"errors.login_failed":           "ログインに失敗しました。ユーザー名とパスワードを確認してください。",
		"errors.login_required":         "ログインが必要です。もう一度ログインしてください。",
		"errors.password_mismatch":      "パスワードが一致しません。",
		"errors.register_failed":        "登録中にエラーが発生しました。",
		"errors.invalid_input":          "入力形式が正しくありません。",
		"errors.translation_failed":     "翻訳に失敗しました。しばらくしてからもう一度お試しください。",
		"errors.history_failed":         "履歴の読み込みに失敗しました。",
		"help.quit":                     "終了",
		"help.language":                 "言語",
		"help.navigate":                 "移動",
		"help.submit":                   "送信",
		"help.edit":                     "入力",
		"help.done":                     "完了",
		"help.switch_form":              "ログイン/登録の切替",
		"help.toggle":                   "方向",
		"help.copy":                     "コピー",
		"help.open_browser":             "キー発行ページ",
		"help.scroll":                   "スクロール",
		"help.refresh":                  "再読み込み",
	},
}
