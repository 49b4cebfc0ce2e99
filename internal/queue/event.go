package queue

// MenuPriceUpdatedEvent is published whenever an association mutation changes
// a menu's denormalized price.  It contains enough information for downstream
// consumers to log or trigger analytics without querying the primary
// database.  Change is one of "plat_added", "plat_removed" or "reset".
type MenuPriceUpdatedEvent struct {
    IDMenu     int     `json:"id_menu"`
    IDPlat     int     `json:"id_plat,omitempty"`
    Change     string  `json:"change"`
    Price      float64 `json:"price"`
    OccurredAt string  `json:"occurred_at"`
}
