package api

import "github.com/MikeSquared-Agency/triage/internal/domain"

type demoThread struct {
	ID      int    `json:"id"`
	Subject string `json:"subject"`
	Content string `json:"content"`
}

// demoSender is used when classifying demo threads, which carry no sender.
const demoSender = "Unknown"

var demoThreads = []demoThread{
	{
		ID:      1,
		Subject: "Q1 Budget Review Meeting",
		Content: `From: Sarah Johnson <sarah@company.com>
To: Team <team@company.com>
Date: Jan 10, 2026

Hi team,
We need to schedule our Q1 budget review. I propose next Wednesday at 2 PM. Please confirm your availability.

---
From: Mike Chen <mike@company.com>
To: Sarah Johnson <sarah@company.com>
Date: Jan 11, 2026
Wednesday works for me. Should we invite the finance team?

---
From: Sarah Johnson <sarah@company.com>
To: Mike Chen <mike@company.com>
Date: Jan 11, 2026
Yes, good idea. I'll send them an invite. Can you prepare the expense report?

---
From: Mike Chen <mike@company.com>
To: Sarah Johnson <sarah@company.com>
Date: Jan 12, 2026
Will do. I'll have it ready by Tuesday.

---
From: Anna Patel <anna@company.com>
To: Sarah Johnson <sarah@company.com>
Date: Jan 12, 2026
I may be late by 15 mins, just a heads-up.`,
	},
	{
		ID:      2,
		Subject: "New Feature Development Timeline",
		Content: `From: Alex Martinez <alex@company.com>
To: Dev Team <dev@company.com>
Date: Jan 8, 2026

Team,
We need to finalize the timeline for the new user dashboard feature. Let's outline key milestones.

---
From: Emma Wilson <emma@company.com>
To: Alex Martinez <alex@company.com>
Date: Jan 9, 2026
I think we can deliver the MVP in 3 weeks. However, we need clarification on the authentication flow. Are we using OAuth2 or a custom system?

---
From: Alex Martinez <alex@company.com>
To: Emma Wilson <emma@company.com>
Date: Jan 9, 2026
Let's use OAuth2. Can you start on the UI mockups while we finalize the backend specs?

---
From: Emma Wilson <emma@company.com>
To: Alex Martinez <alex@company.com>
Date: Jan 10, 2026
Sounds good. I'll have mockups ready by Friday.

---
From: Rajiv Singh <rajiv@company.com>
To: Alex Martinez <alex@company.com>
Date: Jan 10, 2026
I'll coordinate the API endpoints. Will share documentation by Thursday.`,
	},
	{
		ID:      3,
		Subject: "Client Feedback on Proposal",
		Content: `From: John Davis <john@client.com>
To: Lisa Brown <lisa@company.com>
Date: Jan 5, 2026

Lisa,
Thanks for the proposal. Overall looks good, but we have concerns about the pricing structure.

---
From: Lisa Brown <lisa@company.com>
To: John Davis <john@client.com>
Date: Jan 6, 2026
Thanks for the feedback. What specific concerns do you have? We're open to discussing adjustments.

---
From: John Davis <john@client.com>
To: Lisa Brown <lisa@company.com>
Date: Jan 7, 2026
The licensing fees seem high compared to competitors. Can we negotiate a volume discount?

---
From: Lisa Brown <lisa@company.com>
To: John Davis <john@client.com>
Date: Jan 8, 2026
Let me discuss with our pricing team. I'll get back to you by Wednesday with options.

---
From: John Davis <john@client.com>
To: Lisa Brown <lisa@company.com>
Date: Jan 9, 2026
Also, could we have a trial period for our team to test the software before committing?`,
	},
	{
		ID:      4,
		Subject: "Marketing Campaign Plan",
		Content: `From: Karen Lee <karen@marketing.com>
To: Marketing Team <marketing@company.com>
Date: Jan 7, 2026

Team,
We need to launch the new social media campaign by Feb 1. Please review the content calendar attached.

---
From: Daniel Kim <daniel@marketing.com>
To: Karen Lee <karen@marketing.com>
Date: Jan 8, 2026
I've checked the calendar. We might need more graphics for Instagram posts. I'll coordinate with the design team.

---
From: Sophia Martinez <sophia@marketing.com>
To: Karen Lee <karen@marketing.com>
Date: Jan 8, 2026
I can handle scheduling the posts. Will need final content by Jan 25.

---
From: Karen Lee <karen@marketing.com>
To: All <marketing@company.com>
Date: Jan 9, 2026
Perfect. Let's aim for internal review by Jan 20 to ensure everything is ready.`,
	},
}

func demoEmails() []domain.Email {
	emails := make([]domain.Email, len(demoThreads))
	for i, t := range demoThreads {
		emails[i] = domain.Email{ID: t.ID, Subject: t.Subject, Sender: demoSender, Content: t.Content}
	}
	return emails
}
