package prompt

// DefaultExamples are the curated few-shot pairs for the
// skills-profile schema. Each SQL body must itself pass validation
// against schema.SkillsProfile; a test enforces that self-consistency.
func DefaultExamples() []Example {
	return []Example{
		{
			Question: "List all team members reporting to manager with user_id=121",
			SQL: "SELECT u.user_id, u.user_name, u.email, u.job_role " +
				"FROM users u " +
				"WHERE u.manager_user_id = 121 AND u.is_active = TRUE",
		},
		{
			Question: "Show all users with API Connect expertise",
			SQL: "SELECT u.user_id, u.user_name, p.product_name, upe.assessment_level, upe.is_primary " +
				"FROM user_product_expertise upe " +
				"JOIN users u ON upe.user_id = u.user_id " +
				"JOIN products p ON upe.product_id = p.product_id " +
				"WHERE LOWER(p.product_name) LIKE '%api connect%' AND upe.is_active = TRUE",
		},
		{
			Question: "Top 5 users with most approved assets",
			SQL: "SELECT u.user_id, u.user_name, COUNT(upa.asset_id) AS asset_count " +
				"FROM user_product_assets upa " +
				"JOIN users u ON upa.user_id = u.user_id " +
				"WHERE upa.approval_status = 'APPROVED' AND upa.is_active = TRUE " +
				"GROUP BY u.user_id, u.user_name " +
				"ORDER BY asset_count DESC " +
				"FETCH FIRST 5 ROWS ONLY",
		},
		{
			Question: "Show all pending submissions for manager_id = 3243",
			SQL: "SELECT s.submission_id, u.user_name, s.submission_type, s.total_items, s.submitted_at " +
				"FROM submissions s " +
				"JOIN users u ON s.user_id = u.user_id " +
				"WHERE s.manager_id = 3243 AND s.submission_status = 'PENDING' AND s.is_active = TRUE " +
				"ORDER BY s.submitted_at DESC",
		},
		{
			Question: "Users with both primary and secondary expertise in different products",
			SQL: "SELECT DISTINCT u.user_id, u.user_name, p1.product_name AS primary_product, p2.product_name AS secondary_product " +
				"FROM user_product_expertise upe1 " +
				"JOIN user_product_expertise upe2 ON upe1.user_id = upe2.user_id " +
				"JOIN users u ON u.user_id = upe1.user_id " +
				"JOIN products p1 ON upe1.product_id = p1.product_id " +
				"JOIN products p2 ON upe2.product_id = p2.product_id " +
				"WHERE upe1.is_primary = TRUE AND upe2.is_primary = FALSE " +
				"AND upe1.product_id != upe2.product_id " +
				"AND upe1.is_active = TRUE AND upe2.is_active = TRUE",
		},
		{
			Question: "Most shared knowledge content by platform type",
			SQL: "SELECT upks.platform_type, COUNT(upks.knowledge_id) AS content_count " +
				"FROM user_product_knowledge_sharing upks " +
				"WHERE upks.is_active = TRUE AND upks.approval_status = 'APPROVED' " +
				"GROUP BY upks.platform_type " +
				"ORDER BY content_count DESC",
		},
		{
			Question: "Users without any approved expertise",
			SQL: "SELECT u.user_id, u.user_name, u.email " +
				"FROM users u " +
				"LEFT JOIN user_product_expertise upe ON u.user_id = upe.user_id " +
				"AND upe.is_active = TRUE AND upe.approved_by IS NOT NULL " +
				"WHERE upe.expertise_id IS NULL AND u.is_active = TRUE AND u.user_role = 'DC'",
		},
		{
			Question: "Recent notifications for user_id = 100 that are unread",
			SQL: "SELECT n.notification_id, n.notification_type, n.notification_title, n.notification_message, n.created_at " +
				"FROM notifications n " +
				"WHERE n.user_id = 100 AND n.is_read = FALSE " +
				"ORDER BY n.created_at DESC",
		},
	}
}
