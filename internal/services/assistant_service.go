package services

import "strings"

// cannedReply pairs a keyword with its scripted response. Order matters: the
// first keyword contained in the message wins.
type cannedReply struct {
	keyword  string
	response string
}

var cannedReplies = []cannedReply{
	{"shop", "For Shop & Establishment License, you need: 1) Application form 2) Identity proof 3) Address proof 4) Business registration documents. The process typically takes 7-10 working days and costs ₹500-₹2,000 depending on business size."},
	{"gst", "GST return filing deadlines: GSTR-3B is due by 20th of following month, GSTR-1 by 11th for monthly filers. Late filing attracts penalty of ₹200 per day. You can file through the GST portal or our integrated system."},
	{"msme", "Delhi offers several MSME schemes: 1) MSME Credit Guarantee (collateral-free loans) 2) Technology Upgradation Fund 3) Export promotion schemes 4) Skill development programs. Based on your profile, you're eligible for multiple schemes."},
	{"license", "Based on your business type and location, I recommend starting with Shop & Establishment License first, followed by GST registration if turnover exceeds ₹20 lakhs. Would you like me to guide you through the application process?"},
	{"compliance", "Your current compliance score is excellent at 92%. You have 2 upcoming deadlines: GST Return filing (5 days) and Shop & Establishment renewal (25 days). Would you like me to set reminders?"},
}

const defaultReply = "I'm here to help with all your business licensing and compliance needs. You can ask me about license applications, GST filing, MSME schemes, compliance deadlines, or any other business-related queries."

// AssistantService answers chat messages from a fixed keyword table. It is
// stateless and deterministic; there is no external call.
type AssistantService interface {
	Respond(message string) string
}

type assistantService struct{}

func NewAssistantService() AssistantService {
	return &assistantService{}
}

func (s *assistantService) Respond(message string) string {
	lower := strings.ToLower(message)
	for _, reply := range cannedReplies {
		if strings.Contains(lower, reply.keyword) {
			return reply.response
		}
	}
	return defaultReply
}
