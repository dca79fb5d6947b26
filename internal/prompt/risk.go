package prompt

import (
	"fmt"
)

// Most critical clauses appear early in contracts, so the document is cut
// at 35k characters with a note telling the model it happened.
const riskTextLimit = 35000

// RiskSystem is the system prompt for contract risk analysis.
const RiskSystem = "You are a contract risk analysis expert. Analyze contracts for potential risks, liability issues, and problematic clauses. Always respond in valid JSON format. Be concise but thorough."

const riskPatterns = `CRITICAL CLAUSE DETECTION - SCAN FOR THESE SPECIFIC PATTERNS:

SEVERITY 5 - CRITICAL (Financial ruin territory)

1. UNCAPPED LIQUIDATED DAMAGES
   Look for: Daily/weekly penalties WITHOUT phrases like "not to exceed," "maximum," "cap," or "limit"
   Pattern: "$X per day" without a ceiling = Severity 5

2. NO-DAMAGE-FOR-DELAY
   Look for: "sole remedy shall be an extension of time," "no compensation for delays," "not entitled to damages for delay"
   Pattern: Subcontractor gets time only, no money, even when delay is contractor's fault

3. BROAD FORM INDEMNIFICATION
   Look for: "regardless of negligence," "whether or not caused by," "even if caused in whole or in part by [indemnitee]"
   Pattern: Subcontractor indemnifies contractor for contractor's OWN negligence

SEVERITY 4 - HIGH (Significant financial exposure)

4. PAY-IF-PAID (not pay-when-paid)
   Look for: "contingent upon," "condition precedent," "only if contractor receives payment"
   Pattern: No owner payment = no subcontractor payment, regardless of fault
   Note: "Pay-when-paid" (payment within X days of contractor receiving payment) = Severity 2

5. FORCED ACCELERATION AT SUB'S EXPENSE
   Look for: "accelerate... at no additional cost," "accelerate... without additional compensation," "regain schedule at subcontractor's expense"

6. SHORT CLAIM NOTICE (<14 days)
   Look for: Claim deadlines of 7 days, 10 days, or similar short windows
   Pattern: Miss the window = waive the claim forever

7. WAIVER UPON FINAL PAYMENT
   Look for: "acceptance of final payment constitutes waiver," "final payment shall release all claims"

8. BACK-CHARGES WITHOUT CONSENT
   Look for: "deduct without consent," "back-charge without approval," "offset from amounts due"

9. WORK DURING DISPUTES (MANDATORY CONTINUATION)
   Look for: "shall proceed with disputed work," "failure to proceed constitutes breach," "continue performance pending resolution"

SEVERITY 3 - MEDIUM (Unfavorable but manageable)

10. HIGH RETAINAGE (>5%)
    Look for: Retainage percentages; flag if >5%
    Pattern: 10% retainage is aggressive; industry moving toward 5%

11. SUSPENSION WITHOUT COMPENSATION
    Look for: "suspend... without additional compensation," "no payment during suspension"

12. TERMINATION FOR CONVENIENCE WITHOUT LOST PROFIT
    Look for: "terminate for convenience," then check if lost profits are excluded

13. CAPPED LIQUIDATED DAMAGES (but still high)
    Look for: LDs with caps >$50K total or >$1,500/day

SEVERITY 2 - LOW-MEDIUM (Standard but note it)

14. FLOW-DOWN PROVISIONS - Standard in subcontracts; just note it exists
15. PAY-WHEN-PAID (not pay-if-paid) - Payment tied to timing, not contingent on receipt
16. EXTENDED WARRANTY (>1 year standard)

SEVERITY 1 - LOW (Standard boilerplate)

17. Assignment restrictions - Standard
18. Governing law - Standard
19. Arbitration/mediation clauses - Standard
20. Independent contractor status - Standard
21. Severability - Standard

ANALYSIS INSTRUCTIONS

1. Systematically scan for ALL patterns listed above
2. Quote the actual contract language when you find a match
3. Explain each risk in plain English a foreman would understand
4. Be specific about section/article numbers
5. If a clause ALMOST matches but has mitigating language, note that
6. Don't flag standard clauses as high-risk (avoid alarm fatigue)
7. In summary, state the overall risk level: LOW / MODERATE / HIGH / CRITICAL

IMPORTANT: Do NOT skip clauses just because you found several already. Check EVERY pattern above against the document.

FINAL CHECK: Before returning your response, verify you scanned for liquidated damages, no-damage-for-delay, indemnification, payment terms (pay-if-paid or pay-when-paid), forced acceleration, claim notice deadlines, final payment waiver, back-charges, work during disputes, retainage percentage, suspension terms, and termination provisions. If you did not find one of these, explicitly state "Not found in document" rather than omitting it.

Format your response as JSON with this structure:
{
  "overall_risk_level": "HIGH",
  "risks": [
    {
      "clause": "Article 3.3 - Liquidated Damages",
      "severity": 5,
      "contract_language": "the sum of TWO THOUSAND FIVE HUNDRED DOLLARS ($2,500.00) per calendar day for each day completion is delayed",
      "explanation": "Liquidated damages of $2,500 per day with NO CAP. A 60-day delay = $150,000. This is unlimited exposure."
    }
  ],
  "summary": "This contract has [X] critical-risk clauses and [Y] high-risk clauses. The most dangerous provisions are [list top 3]. The subcontractor should negotiate [specific recommendations] before signing."
}`

// Risk builds the contract risk analysis prompt.
func Risk(documentText string, totalPages int) string {
	truncationNote := ""
	if len(documentText) > riskTextLimit {
		truncationNote = fmt.Sprintf("\n\nNOTE: Document truncated from %d to %d characters for analysis. Focus on the most critical clauses which typically appear early in contracts.",
			len(documentText), riskTextLimit)
		documentText = Truncate(documentText, riskTextLimit)
	}

	return fmt.Sprintf(`You are a contract risk analysis expert specializing in construction contracts. Analyze the following contract document and identify potential risks, liability issues, and problematic clauses.%s

%s

Contract Document (%d pages):
%s

IMPORTANT: Focus on finding the critical clauses listed above. Be efficient - you don't need to analyze every word, just scan for the specific patterns. If the document is truncated, analyze what you have and note that the full document may contain additional risks.

Analyze this contract systematically. Check EVERY critical pattern listed above. Provide the risk analysis in JSON format:`,
		truncationNote, riskPatterns, totalPages, documentText)
}
