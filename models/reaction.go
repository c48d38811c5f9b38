// Package models — Reaction (beğeni) domain modeli.
//
// Her içerik (galeri gönderisi, pano yazısı) için kullanıcı en fazla
// BİR aktif tepki verebilir: Like veya Dislike.
// Sayılar server-authoritative'dir — client optimistic olarak aynalar,
// başarılı yanıtta server değerleri yerel state'in üzerine yazılır.
package models

// ReactionKind, bir tepkinin türünü temsil eden typed constant.
// Go'da enum yoktur — typed string constant'lar kullanılır.
type ReactionKind string

const (
	ReactionNone    ReactionKind = ""        // Aktif tepki yok
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

// Valid, kind'ın toggle edilebilir bir tür olup olmadığını döner.
// ReactionNone toggle isteği olarak geçersizdir — None'a dönüş,
// aynı türün tekrar toggle edilmesiyle (retraction) olur.
func (k ReactionKind) Valid() bool {
	return k == ReactionLike || k == ReactionDislike
}

// ReactionState, görüntülenen bir içeriğin tepki durumudur.
// Detay ekranı açıldığında oluşturulur, ekran kapanınca atılır — persist edilmez.
//
// Invariant: UserReaction en fazla bir aktif tepkiyi gösterir;
// LikeCount ve DislikeCount hiçbir zaman negatif olmaz.
type ReactionState struct {
	LikeCount    int          `json:"like_count"`
	DislikeCount int          `json:"dislike_count"`
	UserReaction ReactionKind `json:"user_reaction"`
}

// Counter, verilen türe karşılık gelen sayacın değerini döner.
func (s ReactionState) Counter(kind ReactionKind) int {
	if kind == ReactionLike {
		return s.LikeCount
	}
	return s.DislikeCount
}

// ReactionRequest, insert/update çağrılarının payload'ı.
// Delete (retraction) çağrısında tür gönderilmez — backend mevcut tepkiyi siler.
type ReactionRequest struct {
	ContentID    string       `json:"contentId"`
	ReactionType ReactionKind `json:"reactionType,omitempty"`
}
