package prompt

import (
	"strings"

	ragcontext "averin-be/pkg/rag/context"
)

// Builder composes the single instructional prompt sent to the
// generation provider: persona, output rules, guardrails, the assembled
// vault context, and the user's question.
type Builder struct {
	block    *ragcontext.Block
	question string
}

func NewBuilder(block *ragcontext.Block, question string) *Builder {
	return &Builder{
		block:    block,
		question: question,
	}
}

func (b *Builder) Build() string {
	var prompt strings.Builder

	b.writePersona(&prompt)
	b.writeOutputRules(&prompt)
	b.writeFormatRules(&prompt)
	b.writeBehaviorRules(&prompt)
	b.writeUserData(&prompt)
	b.writeQuestion(&prompt)

	return prompt.String()
}

func (b *Builder) writePersona(prompt *strings.Builder) {
	prompt.WriteString("You are Averin, a smart, helpful, and human-like personal assistant and also a general guide ensuring effective living. ")
	prompt.WriteString("You have access to the user's personal data and information that they have stored in their vault, which may include notes, attachments, links, and other relevant content. ")
	prompt.WriteString("Your task is to provide accurate and helpful answers to the user's questions based on the information available in their vault.\n\n")
}

func (b *Builder) writeOutputRules(prompt *strings.Builder) {
	prompt.WriteString("STRICT OUTPUT RULES (VERY IMPORTANT):\n")
	prompt.WriteString("- Write in natural conversational sentences, like a genius would\n")
	prompt.WriteString("- Keep the tone clear and concise, but also warm and friendly\n")
	prompt.WriteString("- When useful, use simple Markdown bullet points or numbered lists\n")
	prompt.WriteString("- Short paragraphs or sentences are preferred\n")
	prompt.WriteString("- Keep the answer concise and to the point\n\n")
}

func (b *Builder) writeFormatRules(prompt *strings.Builder) {
	prompt.WriteString("FORMAT RULES:\n")
	prompt.WriteString("- If you list items, use \"-\" for bullet points\n")
	prompt.WriteString("- Use \"1.\", \"2.\", \"3.\" for numbered lists\n")
	prompt.WriteString("- Do NOT use \"•\" symbols\n\n")
}

func (b *Builder) writeBehaviorRules(prompt *strings.Builder) {
	prompt.WriteString("BEHAVIOR RULES:\n")
	prompt.WriteString("- Use ONLY the user's personal data provided below\n")
	prompt.WriteString("- Reference previous questions and answers when relevant (from conversation history)\n")
	prompt.WriteString("- If the data is insufficient, clearly say you do not have enough information but make sure to give general advice if possible\n")
	prompt.WriteString("- Do NOT diagnose or give medical prescriptions unless you have very clear and specific information that justifies it, and even then, be very cautious and always encourage consulting a doctor\n")
	prompt.WriteString("- You may suggest gentle next steps\n")
	prompt.WriteString("- Write as if you are speaking to one person and use \"you\" to refer to the user\n")
	prompt.WriteString("- Acknowledge the user's feelings and experiences when relevant\n")
	prompt.WriteString("- Always encourage the user to seek professionals when it comes to health-related questions or serious issues\n\n")
}

func (b *Builder) writeUserData(prompt *strings.Builder) {
	prompt.WriteString("User's Personal Data:\n")
	prompt.WriteString(b.block.Data)
	prompt.WriteString("\n")
	if b.block.Conversation != "" {
		prompt.WriteString("\n")
		prompt.WriteString(b.block.Conversation)
		prompt.WriteString("\n")
	}
	prompt.WriteString("\n")
}

func (b *Builder) writeQuestion(prompt *strings.Builder) {
	prompt.WriteString("User's Question:\n")
	prompt.WriteString(b.question)
	prompt.WriteString("\n\nNow reply in smart but, friendly human language.")
}
