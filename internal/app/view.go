package app

// View identifies one screen of the application
type View string

const (
	ViewDashboard     View = "dashboard"
	ViewReports       View = "reports"
	ViewHealthAI      View = "healthAI"
	ViewAlerts        View = "alerts"
	ViewProfile       View = "profile"
	ViewAddData       View = "addData"
	ViewConnectDevice View = "connectDevice"
	ViewEditProfile   View = "editProfile"
)

// Views returns all views in no particular order
func Views() []View {
	return []View{
		ViewDashboard, ViewReports, ViewHealthAI, ViewAlerts,
		ViewProfile, ViewAddData, ViewConnectDevice, ViewEditProfile,
	}
}

// IsValid checks if the view is a recognized value
func (v View) IsValid() bool {
	switch v {
	case ViewDashboard, ViewReports, ViewHealthAI, ViewAlerts,
		ViewProfile, ViewAddData, ViewConnectDevice, ViewEditProfile:
		return true
	}
	return false
}

// ShowsNav reports whether the bottom navigation is visible on this view.
// Full-screen flows (assistant, data entry, device pairing, profile edit)
// hide it.
func (v View) ShowsNav() bool {
	switch v {
	case ViewHealthAI, ViewAddData, ViewConnectDevice, ViewEditProfile:
		return false
	}
	return true
}

// State is the application lifecycle phase
type State string

const (
	StateLoading    State = "loading"
	StateOnboarding State = "onboarding"
	StateReady      State = "ready"
)
