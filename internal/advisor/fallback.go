package advisor

import (
	"fmt"

	"github.com/xaenox/mudhumeni/internal/completion"
	"github.com/xaenox/mudhumeni/internal/models"
)

const detailsRequest = "\n\nFor the best help, please provide:\n" +
	"• Your location in Zimbabwe\n" +
	"• The specific crop you're interested in\n" +
	"• Your farm size and experience level\n" +
	"• Any particular challenges you're facing\n\n" +
	"This will help me provide more targeted agricultural guidance even without full AI capabilities."

var fallbackQuestions = []string{
	"What specific crop are you asking about?",
	"Which region of Zimbabwe is your farm located in?",
	"What's your current farming experience level?",
	"Are you facing any immediate agricultural challenges?",
	"What season or timing are you planning for?",
}

var fallbackTeaching = models.TeachingElements{
	Explanation: "Specific information about your farming situation helps provide more targeted and useful advice, even when technical systems have issues.",
	Example:     "For example, asking 'How do I plant maize in Mashonaland Central in November?' gives much better guidance than just 'help with maize.'",
	CheckPoint:  "Don't let technical difficulties stop your farming progress - there are always ways to get the agricultural guidance you need.",
}

// Fallback builds the degraded response shown when the completion call
// failed. It always returns a complete StructuredResponse.
func Fallback(err error, question string) models.StructuredResponse {
	kind := completion.KindUpstream
	if err != nil {
		kind = completion.KindOf(err)
	}

	var message string
	var confidence float64

	switch kind {
	case completion.KindAuth:
		message = fmt.Sprintf("I need a valid completion API key to provide AI-powered responses. Please set MUDHUMENI_COMPLETION_API_KEY (or GROQ_API_KEY). Meanwhile, I can still help with your farming question about \"%s\" - could you provide more specific details about your farming situation?", question)
		confidence = 0.4
	case completion.KindRateLimit:
		message = fmt.Sprintf("I've reached my API rate limit temporarily. However, I can still assist with your farming question about \"%s\". Could you provide more details about your specific farming challenge?", question)
		confidence = 0.7
	case completion.KindNetwork:
		message = fmt.Sprintf("I'm having trouble connecting to my AI system right now due to network issues. But I can still help with your farming question about \"%s\". What specific aspects would you like guidance on?", question)
		confidence = 0.6
	default:
		message = fmt.Sprintf("I'm experiencing technical difficulties with my AI system. However, I'm still here to help with your farming question about \"%s\". Let me provide what guidance I can.", question)
		confidence = 0.5
	}

	return models.StructuredResponse{
		ResponseText:      message + detailsRequest,
		Confidence:        confidence,
		FollowUpQuestions: append([]string(nil), fallbackQuestions...),
		TeachingElements:  fallbackTeaching,
	}
}
