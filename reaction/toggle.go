// Package reaction — optimistic like/dislike senkronizasyonu.
//
// Bu dosya state geçiş mantığının SAF (pure) kısmını içerir:
// network yok, mutation yok, side effect yok. Synchronizer (sync.go)
// bu fonksiyonları optimistic update + rollback efekti ile sarar.
// Saf fonksiyonlar network'ten bağımsız olarak unit-test edilir.
package reaction

import "github.com/neighbus/neighbus/models"

// Verb, toggle'ın backend'e hangi çağrı olarak gideceğini belirtir.
// Verb SABİT bir eşleme ile DEĞİL, ApplyToggle ile aynı durum analiziyle seçilir.
type Verb string

const (
	// VerbInsert: ilk oy — kullanıcının bu içerikte aktif tepkisi yoktu.
	VerbInsert Verb = "insert"
	// VerbUpdate: geçiş — aktif tepki diğer türe çevriliyor.
	VerbUpdate Verb = "update"
	// VerbDelete: retraction — aktif tepki geri çekiliyor.
	VerbDelete Verb = "delete"
)

// ApplyToggle, bir toggle isteğinin yerel state geçişini hesaplar.
//
// Durum analizi (previousReaction, requestedKind) üzerinden:
//   - previous == requested → retraction: tepki kalkar, o sayaç 1 azalır
//   - aksi halde → yeni oy veya geçiş: istenen sayaç 1 artar;
//     önceki tepki DİĞER türse onun sayacı 1 azalır; tepki istenen tür olur
//
// Girdi değiştirilmez, yeni state döner.
func ApplyToggle(state models.ReactionState, kind models.ReactionKind) models.ReactionState {
	next := state

	if state.UserReaction == kind {
		// Retraction
		next.UserReaction = models.ReactionNone
		switch kind {
		case models.ReactionLike:
			next.LikeCount--
		case models.ReactionDislike:
			next.DislikeCount--
		}
		return next
	}

	switch kind {
	case models.ReactionLike:
		next.LikeCount++
		if state.UserReaction == models.ReactionDislike {
			next.DislikeCount--
		}
	case models.ReactionDislike:
		next.DislikeCount++
		if state.UserReaction == models.ReactionLike {
			next.LikeCount--
		}
	}
	next.UserReaction = kind

	return next
}

// SelectVerb, toggle'ın backend verb'ünü ApplyToggle ile AYNI durum
// analiziyle seçer:
//   - previous == requested → delete (retraction)
//   - previous == diğer tür → update (geçiş)
//   - previous == none      → insert (ilk oy)
func SelectVerb(previous, requested models.ReactionKind) Verb {
	switch {
	case previous == requested:
		return VerbDelete
	case previous == models.ReactionNone:
		return VerbInsert
	default:
		return VerbUpdate
	}
}
