package polyglot

import "fmt"

// Lang is the active language for CLI messages.
var Lang = "en"

// MessageLangs lists the languages the CLI messages are available in.
var MessageLangs = []string{"en", "ja", "fr"}

// Messages keyed by ID, with en/ja/fr variants.
var messages = map[string]map[string]string{
	// === Sync ===
	"source_info":     {"en": "Source: %s (%d keys)", "ja": "ソース: %s (%d キー)", "fr": "Source : %s (%d clés)"},
	"translating":     {"en": "Translating %d missing key(s) %s -> %s", "ja": "未翻訳 %d 件を翻訳中 %s -> %s", "fr": "Traduction de %d clé(s) manquante(s) %s -> %s"},
	"locale_created":  {"en": "Created %s", "ja": "%s を作成", "fr": "%s créé"},
	"locale_saved":    {"en": "Saved %s (%d new key(s))", "ja": "%s を保存 (新規 %d 件)", "fr": "%s enregistré (%d nouvelle(s) clé(s))"},
	"locale_current":  {"en": "%s is up to date", "ja": "%s は最新", "fr": "%s est à jour"},
	"prompt_delete":   {"en": "Do you want to delete key \"%s\" from translations [Y/n]", "ja": "キー \"%s\" を翻訳から削除しますか [Y/n]", "fr": "Supprimer la clé \"%s\" des traductions [Y/n]"},
	"key_removed":     {"en": "Removed key \"%s\" from %s", "ja": "キー \"%s\" を %s から削除", "fr": "Clé \"%s\" supprimée de %s"},
	"key_kept":        {"en": "Kept key \"%s\" in %s", "ja": "キー \"%s\" を %s に保持", "fr": "Clé \"%s\" conservée dans %s"},
	"nothing_pruned":  {"en": "No locale file changed during pruning", "ja": "削除で変更されたロケールファイルはありません", "fr": "Aucun fichier de langue modifié pendant le nettoyage"},
	"dry_run_missing": {"en": "[dry-run] %s: %d missing key(s)", "ja": "[dry-run] %s: 未翻訳 %d 件", "fr": "[simulation] %s : %d clé(s) manquante(s)"},
	"dry_run_stale":   {"en": "[dry-run] %s: %d stale key(s)", "ja": "[dry-run] %s: 不要キー %d 件", "fr": "[simulation] %s : %d clé(s) obsolète(s)"},

	// === Stats ===
	"readme_updated": {"en": "Updated translation table in %s", "ja": "%s の翻訳表を更新", "fr": "Tableau des traductions mis à jour dans %s"},
	"watching":       {"en": "Watching %s for changes...", "ja": "%s の変更を監視中...", "fr": "Surveillance de %s..."},
	"watch_failed":   {"en": "Stats update failed: %v", "ja": "統計の更新に失敗: %v", "fr": "Échec de la mise à jour des statistiques : %v"},

	// === Signal ===
	"interrupted": {"en": "Interrupted", "ja": "中断", "fr": "Interrompu"},
}

// Msg returns a localized message by key.
// Falls back to English if the key or language is missing.
func Msg(key string) string {
	if m, ok := messages[key]; ok {
		if s, ok := m[Lang]; ok {
			return s
		}
		if s, ok := m["en"]; ok {
			return s
		}
	}
	return fmt.Sprintf("[missing: %s]", key)
}
