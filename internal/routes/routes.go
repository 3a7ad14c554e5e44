package routes

const (
	Health = "/health"

	PaymentCreateIntent = "/api/payment/create-payment-intent"
	PaymentConfirm      = "/api/payment/confirm-payment"
	PaymentStatus       = "/api/payment/status/{bookingId}"
	PaymentWebhook      = "/api/payment/webhook"

	Bookings         = "/api/booking"
	BookingCreate    = "/api/booking/create"
	Booking          = "/api/booking/{id}"
	BookingStatus    = "/api/booking/{id}/status"
	UserBookings     = "/api/booking/user/{userId}"
	PropertyBookings = "/api/booking/property/{propertyId}"

	Properties = "/api/property"
	Property   = "/api/property/{id}"

	Enquiries     = "/api/enquiry"
	Enquiry       = "/api/enquiry/{id}"
	EnquiryStatus = "/api/enquiry/{id}/status"
	UserEnquiries = "/api/enquiry/user/{userId}"

	Users = "/api/users"
	User  = "/api/users/{id}"

	Plans        = "/api/plans"
	Plan         = "/api/plans/{id}"
	PlanPurchase = "/api/plans/purchase"
	// MyPlans sits outside /api/plans so the public {id} route cannot
	// shadow it.
	MyPlans = "/api/user/plans"

	Reviews         = "/api/reviews"
	Review          = "/api/reviews/{id}"
	PropertyReviews = "/api/reviews/property/{propertyId}"

	Wishlist     = "/api/wishlist"
	WishlistItem = "/api/wishlist/{propertyId}"

	Contents = "/api/content"
	Content  = "/api/content/{id}"

	Categories = "/api/categories"
	Category   = "/api/categories/{id}"

	AnalyticsDashboard = "/api/analytics/dashboard"
)
