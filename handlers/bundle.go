package handlers

// HandlerBundle groups the endpoint handlers routes are registered against.
type HandlerBundle struct {
	Bookings *BookingHandler
	Voice    *VoiceHandler
}
