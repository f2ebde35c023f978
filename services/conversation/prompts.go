package conversation

import "fmt"

const (
	promptWelcome          = "Hi! Welcome to our restaurant. May I know your name?"
	promptAskCuisine       = "Great. Do you have any cuisine preference? For example, Indian, Italian, Chinese?"
	promptAskSpecial       = "Noted. Any special requests? For example, birthday celebration, anniversary, or dietary restrictions?"
	promptAskCity          = "Thanks. Finally, which city are you in?"
	promptSubmissionFailed = "Sorry, I could not complete the booking due to a technical issue. Please try again later."
	promptRestart          = "If you want to make another booking, you can say start again after clicking the button."
	promptFallback         = "Sorry, I got a bit confused. Let's start again. May I know your name?"
)

func promptAskGuests(name string) string {
	return fmt.Sprintf("Nice to meet you, %s. For how many guests should I book the table?", name)
}

func promptAskDate(guests int) string {
	return fmt.Sprintf("Got it, %d guests. For which day would you like the booking? You can say today, tomorrow, or day after tomorrow.", guests)
}

func promptAskTime(human string) string {
	return fmt.Sprintf("Okay, %s. At what time would you like to book?", human)
}

func promptConfirming(city string) string {
	return fmt.Sprintf("Thank you. Let me confirm your booking for %s.", city)
}

func promptConfirmed(name string, guests int, human, bookingTime, seating string) string {
	return fmt.Sprintf("Your table is confirmed, %s, for %d guests on %s at %s, with %s seating. See you soon!",
		name, guests, human, bookingTime, seating)
}
