package analysis

import "fmt"

// Prompt templates. These are data, not logic: they pin down the exact
// JSON field names the model must emit, the scoring rubrics, and the
// repeated warnings against echoing the schema's instructional text.

const comprehensivePromptTemplate = `You are an expert startup analyst and business strategist with deep experience in market analysis, competitive intelligence, and business model validation. Your task is to provide a comprehensive, data-driven analysis of the following startup idea.

## STARTUP IDEA TO ANALYZE:
%q

## AVAILABLE DATA:
%s

## CRITICAL INSTRUCTIONS - READ CAREFULLY:

**DO NOT COPY EXAMPLE VALUES** - You must perform actual analysis and provide real, computed scores and insights based on the data provided.

**ANALYZE THE ACTUAL DATA** - Use the trends, competitor, and community data to inform your assessment. Don't make assumptions.

**PROVIDE DYNAMIC INSIGHTS** - Every field should contain unique, thoughtful analysis specific to this startup idea.

## ANALYSIS FRAMEWORKS TO APPLY:

1. **Porter's 5 Forces Analysis** - Evaluate competitive rivalry, supplier power, buyer power, threat of new entrants, threat of substitutes
2. **Value Chain Analysis** - Identify where value can be added or costs reduced in the business model
3. **Blue Ocean Strategy** - Find uncontested market spaces and differentiation opportunities
4. **Customer Journey Mapping** - Identify pain points, needs, and opportunities in the customer experience
5. **Market Timing Assessment** - Evaluate if the market is ready for this solution

## OUTPUT SCHEMA (MUST FOLLOW EXACTLY):

Return a valid JSON object with this exact structure. Fill every field with thoughtful, data-driven analysis:

{
  "analysis_metadata": {
    "confidence_score": "A calculated value between 0 and 1 based on data quality and idea strength. Consider: data completeness, market clarity, competitive landscape, and execution feasibility",
    "analysis_depth": "comprehensive",
    "data_sources_used": ["List the actual data sources you used from the provided context"]
  },
  "market_assessment": {
    "overall_score": "A calculated score from 0-100 based on your analysis. Consider market size, timing, barriers, and opportunity",
    "verdict": "Your professional assessment: 'Exceptional opportunity', 'Strong potential', 'Promising with caveats', 'Moderate opportunity', 'Weak opportunity', or 'High risk'",
    "market_saturation": "Your assessment: 'Low', 'Moderate', 'High', or 'Oversaturated' with reasoning",
    "entry_barriers": "Your assessment: 'Low', 'Medium', 'High' with specific barriers identified",
    "market_timing": "Your assessment of market readiness with specific reasoning"
  },
  "competitive_landscape": {
    "existing_solutions": [
      {
        "name": "Actual competitor name from your research",
        "strengths": ["Specific strengths based on your analysis"],
        "weaknesses": ["Specific weaknesses or gaps you identified"],
        "market_position": "Your assessment: 'Market Leader', 'Strong Challenger', 'Niche Player', or 'Emerging'",
        "customer_pain_points": ["Specific pain points this competitor doesn't solve well"],
        "differentiation_gaps": ["Specific opportunities where this competitor falls short"]
      }
    ],
    "market_gaps": ["Specific underserved segments or unmet needs you identified"],
    "competitive_advantages": ["Specific advantages this startup idea has over existing solutions"],
    "market_saturation_level": "Your detailed analysis of market saturation with specific evidence"
  },
  "uniqueness_analysis": {
    "novelty_score": "A calculated score from 0-10 based on how unique this idea is compared to existing solutions",
    "differentiation_factors": ["Specific factors that make this idea different from competitors"],
    "copycat_risk": "Your assessment: 'Low', 'Medium', or 'High' with reasoning",
    "innovation_level": "Your assessment: 'Breakthrough', 'Incremental', or 'Iterative' with explanation",
    "unique_value_proposition": "Your clear statement of the unique value this startup provides"
  },
  "business_viability": {
    "customer_value_proposition": "Your analysis of the problem-solution fit with specific customer benefits",
    "target_market_size": "Your assessment: 'Large', 'Medium', or 'Small' with specific reasoning and numbers if available",
    "monetization_potential": "Your assessment: 'High', 'Medium', or 'Low' with specific strategy suggestions",
    "pricing_strategy": "Your recommended pricing approach based on the market analysis",
    "customer_acquisition_cost": "Your estimate of CAC with reasoning based on the competitive landscape",
    "unit_economics": "Your assessment of unit economics feasibility"
  },
  "risk_assessment": {
    "market_risks": ["Specific market risks you identified with evidence"],
    "execution_risks": ["Specific technical or operational challenges you foresee"],
    "competitive_risks": ["Specific competitive threats or market responses you anticipate"],
    "mitigation_strategies": ["Specific strategies to address each major risk"],
    "risk_level": "Your overall risk assessment: 'Low', 'Medium', or 'High' with reasoning"
  },
  "value_enhancement_roadmap": {
    "current_gaps": ["Specific gaps in existing solutions that this startup can address"],
    "differentiation_opportunities": ["Specific opportunities to differentiate from competitors"],
    "feature_prioritization": ["Your recommended feature development phases with reasoning"],
    "market_positioning": ["Your recommended positioning strategies based on competitive analysis"],
    "competitive_response_strategy": ["Your strategy for responding to competitive moves"]
  },
  "strategic_recommendations": {
    "market_entry_strategy": "Your specific recommendation for how to enter the market",
    "pivot_suggestions": ["Specific pivot options if the current approach has issues"],
    "success_factors": ["Key factors that will determine success for this startup"],
    "next_steps": ["Immediate, actionable next steps you recommend"],
    "timeline_recommendations": "Your recommended timeline for execution with milestones"
  }
}

## ANALYSIS QUALITY REQUIREMENTS:

1. **Data-Driven**: Base every assessment on the provided data, not assumptions
2. **Specific**: Avoid generic statements. Provide concrete examples and specific insights
3. **Honest**: Be truthful about risks and challenges, even if negative
4. **Constructive**: Even negative assessments should provide improvement paths
5. **Actionable**: Every recommendation must be specific and implementable
6. **Balanced**: Consider both opportunities and risks objectively

## SCORING GUIDELINES:

- **90-100**: Exceptional opportunity with clear competitive advantages and strong market timing
- **75-89**: Strong opportunity with good differentiation and manageable risks
- **60-74**: Promising opportunity with some caveats and specific improvement areas
- **40-59**: Moderate opportunity requiring significant changes or better timing
- **20-39**: Weak opportunity with high risk or poor market fit
- **0-19**: High risk with limited potential or poor market timing

## FINAL REMINDER:

**DO NOT COPY EXAMPLE VALUES** - Every field must contain your actual analysis and insights.
**USE THE PROVIDED DATA** - Reference specific data points from trends, competitors, and community analysis.
**BE THOUGHTFUL** - This is a real business analysis, not a template exercise.

Now perform your comprehensive analysis of this startup idea and provide your professional assessment in the required JSON format.`

const quickPromptTemplate = `You are a startup analyst. Provide a quick but insightful assessment of this startup idea:

## IDEA: %q

## DATA:
%s

## INSTRUCTIONS:
- Analyze the actual data provided
- Provide specific insights, not generic statements
- Base your assessment on the trends, competitors, and community data

## OUTPUT SCHEMA (JSON):
{
  "quick_assessment": {
    "market_potential": "Your assessment: High/Medium/Low with specific reasoning based on the data",
    "competitive_landscape": "Your analysis of the competitive situation with specific insights",
    "key_risks": ["Specific risks you identified from the data"],
    "immediate_concerns": "Main concern if any, or 'None identified'",
    "next_step": "Specific, actionable next step based on your analysis"
  }
}

Provide a concise but insightful quick assessment based on the actual data provided.`

// ComprehensivePrompt returns the full-analysis prompt for an idea and
// its rendered context.
func ComprehensivePrompt(idea, context string) string {
	return fmt.Sprintf(comprehensivePromptTemplate, idea, context)
}

// QuickPrompt returns the quick-assessment prompt for an idea and its
// rendered context.
func QuickPrompt(idea, context string) string {
	return fmt.Sprintf(quickPromptTemplate, idea, context)
}
