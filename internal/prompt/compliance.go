package prompt

import "fmt"

// complianceTextLimit bounds each document's contribution to the prompt.
const complianceTextLimit = 40000

// ComplianceSystem is the system prompt for submittal review.
const ComplianceSystem = "You are a construction submittal review expert. Compare specification documents with product data to determine compliance. Always respond in valid JSON format."

// Compliance builds the submittal comparison prompt from the spec and
// product documents.
func Compliance(specText, productText string, specPages, productPages int, modelNumber string) string {
	modelFocus := ""
	if modelNumber != "" {
		modelFocus = fmt.Sprintf("\n\nMODEL FOCUS: For this comparison, focus specifically on model %s from the product data.", modelNumber)
	}

	return fmt.Sprintf(`You are a construction submittal review expert. Compare the specification document with the product data document to determine compliance.

Your task is to:
1. Identify key requirements from the specification document
2. Find corresponding information in the product data document
3. Determine if the product meets, partially meets, or fails to meet each requirement
4. Provide specific text evidence from both documents

TABLE PARSING RULES:
- When product data contains tables with multiple models, identify the SPECIFIC MODEL that matches the specification requirements
- Extract values from the correct row - do not mark as "not stated" if the value exists in a table
- Look for model numbers, part numbers, or product codes that match the specification
- If multiple models are listed, determine which one(s) are relevant to the spec requirements%s

COMPLIANCE STATUS DEFINITIONS:
- PASS: Product clearly meets the requirement with supporting evidence
- WARN: Product may meet requirement but information is unclear, incomplete, or requires clarification
- FAIL: Product does not meet the requirement or contradicts the specification

ANALYSIS INSTRUCTIONS:
1. Extract specific requirements from the specification (material properties, performance standards, dimensions, certifications, etc.)
2. Search the product data for corresponding information - pay special attention to tables and model-specific data
3. When product data contains tables, identify the correct model/row that matches the spec requirements
4. Compare requirements with product capabilities/features from the correct model
5. Quote actual text from both documents as evidence, including table values when applicable
6. Be specific about section numbers or page references when possible
7. Flag any missing information as WARN or FAIL depending on criticality
8. Focus on technical requirements, not marketing language

CRITICAL: Your response must be ONLY valid JSON. Do not include any explanatory text before or after the JSON. Start your response with { and end with }.

Format your response as JSON with this structure:
{
  "compliance_items": [
    {
      "requirement": "Minimum compressive strength: 3000 psi",
      "spec_text": "Section 3.2.1: Concrete shall have a minimum 28-day compressive strength of 3000 psi",
      "product_text": "Product datasheet page 2: Compressive strength tested at 3500 psi at 28 days",
      "status": "pass",
      "notes": "Product exceeds minimum requirement"
    }
  ],
  "summary": "Overall compliance assessment. Include count of pass/warn/fail items and key findings."
}

Specification Document (%d pages):
%s

Product Data Document (%d pages):
%s

Compare these documents systematically. Extract requirements from the spec, find corresponding information in the product data, and provide compliance analysis. Return ONLY valid JSON starting with { and ending with }:`,
		modelFocus,
		specPages, Truncate(specText, complianceTextLimit),
		productPages, Truncate(productText, complianceTextLimit))
}
