package schema

// SkillsProfile returns the descriptor for the skills-profile
// database. Column comments mirror the database documentation and are
// surfaced verbatim in generation prompts.
func SkillsProfile() *Descriptor {
	return New([]Table{
		{
			Name: "users",
			Columns: []Column{
				{Name: "user_id", Type: "INTEGER", Comment: "unique user ID, auto-increment"},
				{Name: "talent_id", Type: "VARCHAR(20)", Comment: "external talent ID"},
				{Name: "w3_id", Type: "VARCHAR(50)", Comment: "corporate directory ID"},
				{Name: "user_name", Type: "VARCHAR(200)", Comment: "full name of the user"},
				{Name: "email", Type: "VARCHAR(255)", Comment: "email address"},
				{Name: "profile_picture_url", Type: "VARCHAR(500)", Nullable: true, Comment: "URL to profile picture"},
				{Name: "job_role", Type: "VARCHAR(200)", Nullable: true, Comment: "job role/title"},
				{Name: "pjrs", Type: "VARCHAR(255)", Nullable: true, Comment: "PJRS code"},
				{Name: "user_role", Type: "VARCHAR(10)", Comment: "role: DC, Manager, Admin"},
				{Name: "manager_talent_id", Type: "VARCHAR(20)", Nullable: true, Comment: "manager's talent ID"},
				{Name: "manager_user_id", Type: "INTEGER", Nullable: true, Comment: "manager reference"},
				{Name: "is_manager", Type: "BOOLEAN", Comment: "whether user is a manager"},
				{Name: "is_active", Type: "BOOLEAN", Comment: "account active status"},
				{Name: "created_at", Type: "TIMESTAMP", Comment: "record creation timestamp"},
				{Name: "updated_at", Type: "TIMESTAMP", Comment: "record update timestamp"},
			},
			ForeignKeys: []ForeignKey{
				{Column: "manager_user_id", RefTable: "users", RefColumn: "user_id"},
			},
		},
		{
			Name: "products",
			Columns: []Column{
				{Name: "product_id", Type: "INTEGER", Comment: "unique product ID, auto-increment"},
				{Name: "product_name", Type: "VARCHAR(200)", Comment: "product name"},
				{Name: "product_icon", Type: "VARCHAR(100)", Comment: "product icon identifier"},
				{Name: "category", Type: "VARCHAR(100)", Comment: "product category"},
				{Name: "subcategory", Type: "VARCHAR(100)", Nullable: true, Comment: "product subcategory"},
				{Name: "product_description", Type: "VARCHAR(1000)", Nullable: true, Comment: "product description"},
				{Name: "vendor", Type: "VARCHAR(50)", Comment: "product vendor"},
				{Name: "is_active", Type: "BOOLEAN", Comment: "product active status"},
				{Name: "created_at", Type: "TIMESTAMP", Comment: "record creation timestamp"},
				{Name: "updated_at", Type: "TIMESTAMP", Comment: "record update timestamp"},
			},
		},
		{
			Name: "user_product_expertise",
			Columns: []Column{
				{Name: "expertise_id", Type: "INTEGER", Comment: "unique expertise record ID, auto-increment"},
				{Name: "user_id", Type: "INTEGER", Comment: "owning user"},
				{Name: "product_id", Type: "SMALLINT", Comment: "product the expertise is in"},
				{Name: "assessment_level", Type: "CHAR(2)", Nullable: true, Comment: "expertise assessment level: L1, L2, L3, L4"},
				{Name: "expertise_implement", Type: "BOOLEAN", Comment: "can implement"},
				{Name: "expertise_advise", Type: "BOOLEAN", Comment: "can advise"},
				{Name: "expertise_design", Type: "BOOLEAN", Comment: "can design"},
				{Name: "expertise_perform", Type: "BOOLEAN", Comment: "can perform"},
				{Name: "project_count", Type: "SMALLINT", Nullable: true, Comment: "number of projects with this product"},
				{Name: "has_certification", Type: "BOOLEAN", Comment: "has certification for product"},
				{Name: "certification_url", Type: "VARCHAR(500)", Nullable: true, Comment: "URL to certification"},
				{Name: "is_primary", Type: "BOOLEAN", Comment: "is this the primary expertise"},
				{Name: "record_version", Type: "SMALLINT", Nullable: true, Comment: "version number for tracking changes"},
				{Name: "approved_by", Type: "INTEGER", Nullable: true, Comment: "approving user"},
				{Name: "approved_at", Type: "TIMESTAMP", Nullable: true, Comment: "approval timestamp"},
				{Name: "is_active", Type: "BOOLEAN", Comment: "record active status"},
				{Name: "created_at", Type: "TIMESTAMP", Comment: "record creation timestamp"},
				{Name: "updated_at", Type: "TIMESTAMP", Comment: "record update timestamp"},
			},
			ForeignKeys: []ForeignKey{
				{Column: "user_id", RefTable: "users", RefColumn: "user_id"},
				{Column: "product_id", RefTable: "products", RefColumn: "product_id"},
				{Column: "approved_by", RefTable: "users", RefColumn: "user_id"},
			},
		},
		{
			Name: "user_product_assets",
			Columns: []Column{
				{Name: "asset_id", Type: "INTEGER", Comment: "unique asset ID, auto-increment"},
				{Name: "user_id", Type: "INTEGER", Comment: "asset owner"},
				{Name: "product_id", Type: "SMALLINT", Comment: "related product"},
				{Name: "asset_name", Type: "VARCHAR(200)", Comment: "name/title of the asset"},
				{Name: "asset_description", Type: "VARCHAR(1000)", Comment: "detailed description"},
				{Name: "repository_url", Type: "VARCHAR(500)", Comment: "URL to asset repository"},
				{Name: "platform_type", Type: "VARCHAR(50)", Comment: "platform: GitHub, GitLab, etc."},
				{Name: "url_validated", Type: "BOOLEAN", Comment: "URL validation status"},
				{Name: "users_count", Type: "SMALLINT", Nullable: true, Comment: "number of users using this asset"},
				{Name: "projects_count", Type: "SMALLINT", Nullable: true, Comment: "number of projects using this asset"},
				{Name: "time_saved_hours", Type: "SMALLINT", Nullable: true, Comment: "estimated time saved in hours"},
				{Name: "approval_status", Type: "VARCHAR(20)", Nullable: true, Comment: "status: PENDING, APPROVED, REJECTED"},
				{Name: "manager_feedback", Type: "VARCHAR(2000)", Nullable: true, Comment: "manager's feedback"},
				{Name: "approved_by", Type: "INTEGER", Nullable: true, Comment: "approving user"},
				{Name: "approved_at", Type: "TIMESTAMP", Nullable: true, Comment: "approval timestamp"},
				{Name: "record_version", Type: "SMALLINT", Nullable: true, Comment: "version number"},
				{Name: "is_active", Type: "BOOLEAN", Comment: "record active status"},
				{Name: "created_at", Type: "TIMESTAMP", Comment: "record creation timestamp"},
				{Name: "updated_at", Type: "TIMESTAMP", Comment: "record update timestamp"},
			},
			ForeignKeys: []ForeignKey{
				{Column: "user_id", RefTable: "users", RefColumn: "user_id"},
				{Column: "product_id", RefTable: "products", RefColumn: "product_id"},
				{Column: "approved_by", RefTable: "users", RefColumn: "user_id"},
			},
		},
		{
			Name: "user_product_knowledge_sharing",
			Columns: []Column{
				{Name: "knowledge_id", Type: "INTEGER", Comment: "unique knowledge sharing record ID, auto-increment"},
				{Name: "user_id", Type: "INTEGER", Comment: "sharing user"},
				{Name: "product_id", Type: "SMALLINT", Comment: "related product"},
				{Name: "content_title", Type: "VARCHAR(300)", Comment: "title of shared content"},
				{Name: "content_type", Type: "VARCHAR(50)", Comment: "type: Blog, Video, Tutorial, etc."},
				{Name: "content_url", Type: "VARCHAR(500)", Comment: "URL to content"},
				{Name: "platform_type", Type: "VARCHAR(50)", Comment: "platform: Medium, YouTube, etc."},
				{Name: "url_validated", Type: "BOOLEAN", Comment: "URL validation status"},
				{Name: "views_count", Type: "INTEGER", Nullable: true, Comment: "number of views"},
				{Name: "engagement_count", Type: "INTEGER", Nullable: true, Comment: "engagement metrics"},
				{Name: "reach_count", Type: "INTEGER", Nullable: true, Comment: "reach metrics"},
				{Name: "approval_status", Type: "VARCHAR(20)", Nullable: true, Comment: "status: PENDING, APPROVED, REJECTED"},
				{Name: "manager_feedback", Type: "VARCHAR(2000)", Nullable: true, Comment: "manager's feedback"},
				{Name: "approved_by", Type: "INTEGER", Nullable: true, Comment: "approving user"},
				{Name: "approved_at", Type: "TIMESTAMP", Nullable: true, Comment: "approval timestamp"},
				{Name: "record_version", Type: "SMALLINT", Nullable: true, Comment: "version number"},
				{Name: "is_active", Type: "BOOLEAN", Comment: "record active status"},
				{Name: "created_at", Type: "TIMESTAMP", Comment: "record creation timestamp"},
				{Name: "updated_at", Type: "TIMESTAMP", Comment: "record update timestamp"},
			},
			ForeignKeys: []ForeignKey{
				{Column: "user_id", RefTable: "users", RefColumn: "user_id"},
				{Column: "product_id", RefTable: "products", RefColumn: "product_id"},
				{Column: "approved_by", RefTable: "users", RefColumn: "user_id"},
			},
		},
		{
			Name: "submissions",
			Columns: []Column{
				{Name: "submission_id", Type: "INTEGER", Comment: "unique submission ID, auto-increment"},
				{Name: "user_id", Type: "INTEGER", Comment: "submitter"},
				{Name: "manager_id", Type: "INTEGER", Comment: "reviewing manager"},
				{Name: "submission_type", Type: "VARCHAR(20)", Comment: "type: EXPERTISE, ASSETS, KNOWLEDGE"},
				{Name: "submission_status", Type: "VARCHAR(20)", Comment: "status: PENDING, APPROVED, REJECTED, PARTIAL"},
				{Name: "total_items", Type: "SMALLINT", Nullable: true, Comment: "total number of items in submission"},
				{Name: "submitted_at", Type: "TIMESTAMP", Nullable: true, Comment: "submission timestamp"},
				{Name: "reviewed_at", Type: "TIMESTAMP", Nullable: true, Comment: "review timestamp"},
				{Name: "manager_feedback", Type: "VARCHAR(2000)", Nullable: true, Comment: "overall manager feedback"},
				{Name: "rejection_reason", Type: "VARCHAR(500)", Nullable: true, Comment: "reason for rejection"},
				{Name: "is_active", Type: "BOOLEAN", Comment: "record active status"},
				{Name: "created_at", Type: "TIMESTAMP", Comment: "record creation timestamp"},
				{Name: "updated_at", Type: "TIMESTAMP", Comment: "record update timestamp"},
			},
			ForeignKeys: []ForeignKey{
				{Column: "user_id", RefTable: "users", RefColumn: "user_id"},
				{Column: "manager_id", RefTable: "users", RefColumn: "user_id"},
			},
		},
		{
			Name: "submission_items",
			Columns: []Column{
				{Name: "item_id", Type: "INTEGER", Comment: "unique item ID, auto-increment"},
				{Name: "submission_id", Type: "INTEGER", Comment: "owning submission"},
				{Name: "item_type", Type: "VARCHAR(20)", Comment: "type: EXPERTISE, ASSET, KNOWLEDGE"},
				{Name: "entity_id", Type: "INTEGER", Comment: "ID of the entity being submitted"},
				{Name: "product_id", Type: "SMALLINT", Comment: "related product"},
				{Name: "change_type", Type: "VARCHAR(10)", Comment: "type: CREATE, UPDATE, DELETE"},
				{Name: "prev_value", Type: "TEXT", Nullable: true, Comment: "previous value as JSON/text"},
				{Name: "new_value", Type: "TEXT", Nullable: true, Comment: "new value as JSON/text"},
				{Name: "approval_status", Type: "VARCHAR(20)", Comment: "status: PENDING, APPROVED, REJECTED"},
				{Name: "rejection_reason", Type: "VARCHAR(500)", Nullable: true, Comment: "reason for rejection"},
				{Name: "reviewed_by", Type: "INTEGER", Nullable: true, Comment: "reviewer"},
				{Name: "reviewed_at", Type: "TIMESTAMP", Nullable: true, Comment: "review timestamp"},
				{Name: "created_at", Type: "TIMESTAMP", Comment: "record creation timestamp"},
				{Name: "updated_at", Type: "TIMESTAMP", Comment: "record update timestamp"},
			},
			ForeignKeys: []ForeignKey{
				{Column: "submission_id", RefTable: "submissions", RefColumn: "submission_id"},
				{Column: "product_id", RefTable: "products", RefColumn: "product_id"},
				{Column: "reviewed_by", RefTable: "users", RefColumn: "user_id"},
			},
		},
		{
			Name: "approvals",
			Columns: []Column{
				{Name: "approval_id", Type: "INTEGER", Comment: "unique approval ID, auto-increment"},
				{Name: "submission_id", Type: "INTEGER", Comment: "approved submission"},
				{Name: "manager_id", Type: "INTEGER", Comment: "approving manager"},
				{Name: "decision", Type: "VARCHAR(10)", Comment: "decision: APPROVED, REJECTED"},
				{Name: "rejection_reason", Type: "VARCHAR(2000)", Nullable: true, Comment: "reason for rejection"},
				{Name: "approval_feedback", Type: "VARCHAR(2000)", Nullable: true, Comment: "approval feedback/comments"},
				{Name: "created_at", Type: "TIMESTAMP", Comment: "approval timestamp"},
			},
			ForeignKeys: []ForeignKey{
				{Column: "submission_id", RefTable: "submissions", RefColumn: "submission_id"},
				{Column: "manager_id", RefTable: "users", RefColumn: "user_id"},
			},
		},
		{
			Name: "notifications",
			Columns: []Column{
				{Name: "notification_id", Type: "INTEGER", Comment: "unique notification ID, auto-increment"},
				{Name: "user_id", Type: "INTEGER", Comment: "recipient"},
				{Name: "notification_type", Type: "VARCHAR(50)", Comment: "type: SUBMISSION, APPROVAL, REJECTION, etc."},
				{Name: "notification_title", Type: "VARCHAR(200)", Comment: "notification title"},
				{Name: "notification_message", Type: "VARCHAR(1000)", Comment: "notification message"},
				{Name: "related_submission_id", Type: "INTEGER", Nullable: true, Comment: "related submission"},
				{Name: "is_read", Type: "BOOLEAN", Comment: "read status"},
				{Name: "read_at", Type: "TIMESTAMP", Nullable: true, Comment: "timestamp when notification was read"},
				{Name: "created_at", Type: "TIMESTAMP", Comment: "notification creation timestamp"},
			},
			ForeignKeys: []ForeignKey{
				{Column: "user_id", RefTable: "users", RefColumn: "user_id"},
				{Column: "related_submission_id", RefTable: "submissions", RefColumn: "submission_id"},
			},
		},
	})
}
